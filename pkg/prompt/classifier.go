// Package prompt recognizes the prompts an SSH client writes to its
// terminal and decides what each read means for the session.
package prompt

import (
	"sshpass/pkg/define"
	"sshpass/pkg/match"

	"github.com/sirupsen/logrus"
)

// Classifier holds one matcher per recognized prompt. It is not safe for
// concurrent use; the session loop owns it.
type Classifier struct {
	password       *match.Matcher
	hostKeyUnknown *match.Matcher
	hostKeyChanged *match.Matcher

	// passwordSeen is set once the password has been sent. A repeated
	// prompt after that is taken as a rejection, which misfires if the
	// client prints the same text for another reason.
	passwordSeen bool
	announced    bool

	log *logrus.Entry
}

// NewClassifier uses define.DefaultPasswordPrompt when passwordPrompt is empty.
func NewClassifier(passwordPrompt string, log *logrus.Entry) *Classifier {
	if passwordPrompt == "" {
		passwordPrompt = define.DefaultPasswordPrompt
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Classifier{
		password:       match.New(passwordPrompt),
		hostKeyUnknown: match.New(define.HostKeyUnknownPrompt),
		hostKeyChanged: match.New(define.HostKeyChangedPrompt),
		log:            log,
	}
}

// Classify consumes one read from the pty. The password prompt is checked
// first, so it wins when several prompts complete in the same buffer.
func (c *Classifier) Classify(buf []byte) define.Outcome {
	if !c.announced {
		c.announced = true
		c.log.Debugf("searching for password prompt using match %q", c.password.Reference())
	}
	c.log.Debugf("read: %s", buf)

	if c.password.Feed(buf) {
		if !c.passwordSeen {
			c.log.Debug("detected prompt, sending password")
			c.password.Reset()
			c.passwordSeen = true
			return define.PasswordSent
		}

		c.log.Debug("detected prompt again, wrong password, terminating")
		return define.WrongPassword
	}

	if c.hostKeyUnknown.Feed(buf) {
		c.log.Debug("detected host authentication prompt, exiting")
		return define.HostKeyUnknownOutcome
	}

	if c.hostKeyChanged.Feed(buf) {
		c.log.Debug("detected host key change, exiting")
		return define.HostKeyChangedOutcome
	}

	return define.StillRunning
}

// PasswordSent reports whether a password prompt has already been answered.
func (c *Classifier) PasswordSent() bool {
	return c.passwordSeen
}

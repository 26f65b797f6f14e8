package session

import (
	"io"
	"os"

	"sshpass/pkg/define"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type signaler interface {
	Signal(sig os.Signal) error
}

// forwarder relays the signals this process receives to the client.
// Interrupt and suspend go through the terminal as control bytes so the
// client's line discipline raises them itself.
type forwarder struct {
	master io.Writer
	child  signaler
	resize func() error

	masterClosed         bool
	childReaped          bool
	terminationRequested bool

	log *logrus.Entry
}

func (f *forwarder) forward(sig os.Signal) {
	switch sig {
	case unix.SIGWINCH:
		if f.resize == nil || f.masterClosed {
			return
		}
		if err := f.resize(); err != nil {
			f.log.Debugf("resize pty: %v", err)
		}
		return
	case unix.SIGINT:
		f.writeControl(define.CtrlC)
	case unix.SIGTSTP:
		f.writeControl(define.CtrlZ)
	default:
		if f.child != nil && !f.childReaped {
			if err := f.child.Signal(sig); err != nil {
				f.log.Debugf("forward %s to child: %v", sig, err)
			}
		}
	}

	f.terminationRequested = true
}

func (f *forwarder) writeControl(b byte) {
	if f.masterClosed {
		return
	}

	n, err := f.master.Write([]byte{b})
	if err != nil {
		f.log.Warnf("write failed: %v", err)
	} else if n != 1 {
		f.log.Warnf("short write: tried to write 1, only wrote %d", n)
	}
}

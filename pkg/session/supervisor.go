// Package session runs a login client on a pseudo-terminal and answers its
// password prompt.
//
// The supervisor owns the pty master. A reader goroutine hands it copies of
// what the client writes, a waiter goroutine reports the client's exit, and
// signals arrive on a channel; the loop selects over all three and is the
// only goroutine touching session state. The password is written from
// inside the handler that saw the prompt, so it always reaches the pty
// before the next read is classified.
package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"sshpass/pkg/define"
	"sshpass/pkg/password"
	"sshpass/pkg/prompt"
	"sshpass/pkg/system"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

type State int

const (
	Initializing State = iota
	Running
	Draining
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

var ErrNoCommand = errors.New("no command to run")

type Options struct {
	// Command is the client and its arguments, looked up in PATH.
	Command []string
	// Prompt overrides define.DefaultPasswordPrompt.
	Prompt string
	// Transmitter defaults to reading the password from stdin.
	Transmitter *password.Transmitter

	// Stdio of the client, os.Stdin/os.Stdout/os.Stderr when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log *logrus.Entry
}

type Supervisor struct {
	opts        Options
	log         *logrus.Entry
	classifier  *prompt.Classifier
	transmitter *password.Transmitter

	pair *Pair
	tty  *os.File
	cmd  *exec.Cmd
	fwd  *forwarder

	state     State
	outcome   define.Outcome
	decided   define.ReturnCode
	procState *os.ProcessState
}

type chunk struct {
	data []byte
	err  error
}

func New(opts Options) (*Supervisor, error) {
	if len(opts.Command) == 0 || opts.Command[0] == "" {
		return nil, ErrNoCommand
	}

	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	tr := opts.Transmitter
	if tr == nil {
		tr = password.NewTransmitter(password.FromStdin(), password.WithLogger(log))
	}

	return &Supervisor{
		opts:        opts,
		log:         log,
		classifier:  prompt.NewClassifier(opts.Prompt, log),
		transmitter: tr,
		fwd:         &forwarder{log: log},
		state:       Initializing,
	}, nil
}

func (s *Supervisor) State() State {
	return s.state
}

// Outcome is the event that concluded the session.
func (s *Supervisor) Outcome() define.Outcome {
	return s.outcome
}

// PasswordSent reports whether the password prompt was answered.
func (s *Supervisor) PasswordSent() bool {
	return s.classifier.PasswordSent()
}

// Run supervises the client until it exits and returns the status this
// process should exit with. An error means the session never started; the
// status is then define.RuntimeError.
func (s *Supervisor) Run(ctx context.Context) (int, error) {
	if err := s.setup(); err != nil {
		return int(define.RuntimeError), err
	}
	defer s.teardown()

	// Subscribe before the client exists so no request is lost.
	sigCh := make(chan os.Signal, 8)
	signalNotify(sigCh, s.tty != nil)
	defer signalStop(sigCh)

	if err := s.spawn(ctx); err != nil {
		return int(define.RuntimeError), err
	}

	done := ctx.Done()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	chunks := make(chan chunk)
	exited := make(chan *os.ProcessState, 1)

	g.Go(func() error {
		return s.pump(gctx, chunks)
	})
	g.Go(func() error {
		exited <- s.wait()
		return nil
	})

	s.state = Running
	s.loop(done, chunks, exited, sigCh)

	// The reader is blocked on the master until it is closed.
	if err := s.pair.Close(); err != nil {
		s.log.Debugf("close pty: %v", err)
	}
	cancel()
	if err := g.Wait(); err != nil {
		s.log.Debugf("pty reader: %v", err)
	}

	status := exitStatus(s.decided, s.procState)
	s.log.Debugf("session ended: outcome %s, exit status %d, termination requested %t",
		s.outcome, status, s.fwd.terminationRequested)

	return status, nil
}

func (s *Supervisor) setup() error {
	pair, err := openPair()
	if err != nil {
		return err
	}
	s.pair = pair
	s.fwd.master = pair.Master
	s.log.Debugf("allocated pseudo terminal %s", pair.Name())

	tty, err := system.OpenControllingTTY()
	if err != nil {
		s.log.Debugf("window size not propagated: %v", err)
		return nil
	}
	if err := system.CopyWinsize(tty, pair.Master); err != nil {
		s.log.Debugf("window size not propagated: %v", err)
		_ = tty.Close()
		return nil
	}

	s.tty = tty
	s.fwd.resize = func() error {
		return system.CopyWinsize(s.tty, s.pair.Master)
	}
	return nil
}

func (s *Supervisor) teardown() {
	if s.pair != nil {
		_ = s.pair.Close()
	}
	if s.tty != nil {
		_ = s.tty.Close()
	}
}

func (s *Supervisor) spawn(ctx context.Context) error {
	cmd := buildCommand(s.opts.Command, s.pair.Slave)
	cmd.Stdin = s.opts.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = s.opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = s.opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to run command %q", s.opts.Command[0])
	}

	s.cmd = cmd
	s.fwd.child = cmd.Process
	s.log.Debugf("started %q on %s", strings.Join(s.opts.Command, " "), s.pair.Name())
	if s.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		s.log.Debugf("child %s", system.DescribeProcess(ctx, cmd.Process.Pid))
	}

	return nil
}

// pump copies reads from the master onto out until a read fails. Closing
// the master ends it without an error; any other read failure is returned.
func (s *Supervisor) pump(ctx context.Context, out chan<- chunk) error {
	send := func(c chunk) bool {
		select {
		case out <- c:
			return true
		case <-ctx.Done():
			return false
		}
	}

	buf := make([]byte, define.ReadBufferSize)
	for {
		n, err := s.pair.Master.Read(buf)
		if n > 0 && !send(chunk{data: bytes.Clone(buf[:n])}) {
			return nil
		}
		if err != nil || n == 0 {
			send(chunk{err: err})
			if err == nil || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return errors.Wrap(err, "read from pty")
		}
	}
}

func (s *Supervisor) wait() *os.ProcessState {
	if err := s.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			s.log.Debugf("wait for child: %v", err)
		}
	}
	return s.cmd.ProcessState
}

func (s *Supervisor) loop(done <-chan struct{}, chunks <-chan chunk, exited <-chan *os.ProcessState, sigCh <-chan os.Signal) {
	for s.state != Terminated {
		in := chunks
		if s.state == Draining {
			in = nil
		}

		select {
		case c := <-in:
			s.handleChunk(c)
		case sig := <-sigCh:
			s.log.Debugf("received %s", sig)
			s.fwd.forward(sig)
		case ps := <-exited:
			s.handleExit(ps)
		case <-done:
			done = nil
			s.log.Debug("context canceled, terminating child")
			s.fwd.forward(unix.SIGTERM)
		}
	}
}

func (s *Supervisor) handleChunk(c chunk) {
	if c.err != nil || len(c.data) == 0 {
		if c.err != nil && !errors.Is(c.err, io.EOF) {
			s.log.Debugf("read from pty: %v", c.err)
		}
		s.outcome = define.PtyClosed
		s.state = Draining
		return
	}

	outcome := s.classifier.Classify(c.data)
	switch {
	case outcome == define.PasswordSent:
		s.outcome = outcome
		if err := s.transmitter.Send(s.pair.Master); err != nil {
			s.log.Errorf("password not sent: %v", err)
		}
	case outcome.Decisive():
		s.outcome = outcome
		s.decided = outcome.ReturnCode()
		// Hang up the client's terminal.
		if err := s.pair.Close(); err != nil {
			s.log.Debugf("close pty: %v", err)
		}
		s.fwd.masterClosed = true
		s.state = Draining
	}
}

func (s *Supervisor) handleExit(ps *os.ProcessState) {
	s.procState = ps
	s.fwd.childReaped = true
	s.state = Terminated

	if s.outcome.Decisive() {
		return
	}
	if ps != nil && ps.Exited() {
		s.outcome = define.ChildExited
	} else {
		s.outcome = define.TerminatedBySignal
	}
}

// exitStatus prefers an outcome decided from the terminal output, then the
// client's own exit status. A client killed by a signal yields 255.
func exitStatus(decided define.ReturnCode, ps *os.ProcessState) int {
	if decided > 0 {
		return int(decided)
	}
	if ps != nil && ps.Exited() {
		return ps.ExitCode()
	}
	return define.SignalDeathStatus
}

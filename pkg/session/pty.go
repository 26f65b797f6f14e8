package session

import (
	stderrors "errors"
	"os"
	"sync"

	"github.com/creack/pty"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Pair is the pseudo-terminal the client runs on.
//
// Master is registered with the runtime poller, so Close interrupts a
// pending Read. Calling Master.Fd() would switch it back to blocking mode
// and must be avoided.
//
// Slave stays open in this process for the whole session, and the child
// keeps its own copy across exec. Linux treats a master with no open slave
// descriptor as hung up: every read fails until the client reopens
// /dev/tty, which turns the read loop into a busy loop. OpenSSH closes
// descriptors it does not recognise, so the child's copy alone is not
// enough.
type Pair struct {
	Master *os.File
	Slave  *os.File

	closeOnce sync.Once
	closed    bool
}

func openPair() (*Pair, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get a pseudo terminal")
	}

	pollable, err := pollableFile(master)
	if err != nil {
		_ = slave.Close()
		return nil, err
	}

	return &Pair{Master: pollable, Slave: slave}, nil
}

// pollableFile replaces f with a non-blocking duplicate. pty.Open leaves the
// master in blocking mode, where Close does not wake a reader until the
// client writes again. f is closed.
func pollableFile(f *os.File) (*os.File, error) {
	defer f.Close()

	fd, err := unix.FcntlInt(f.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dup %s", f.Name())
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return nil, errors.Wrapf(err, "failed to set %s non-blocking", f.Name())
	}

	// NewFile registers a non-blocking descriptor with the poller.
	return os.NewFile(uintptr(fd), f.Name()), nil
}

// Name is the path of the slave device.
func (p *Pair) Name() string {
	return p.Slave.Name()
}

// Close closes both ends. Closing the master hangs up the client's terminal.
func (p *Pair) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.closed = true
		err = stderrors.Join(p.Master.Close(), p.Slave.Close())
	})
	return err
}

func (p *Pair) Closed() bool {
	return p.closed
}

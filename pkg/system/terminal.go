package system

import (
	"fmt"
	"os"

	"sshpass/pkg/define"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// OpenControllingTTY opens the terminal this process was started from. It
// fails when the process has no controlling terminal, e.g. under cron.
func OpenControllingTTY() (*os.File, error) {
	f, err := os.Open(define.ControllingTTY)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", define.ControllingTTY, err)
	}
	return f, nil
}

func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func TerminalSize(f *os.File) (int, int, error) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// CopyWinsize applies the window size of the terminal from to the pty master to.
func CopyWinsize(from, to *os.File) error {
	width, height, err := TerminalSize(from)
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := SetWinsize(to, width, height); err != nil {
		return fmt.Errorf("set pty size to %dx%d: %w", width, height, err)
	}
	return nil
}

// SetWinsize issues TIOCSWINSZ through SyscallConn. Unlike pty.Setsize it
// does not call f.Fd(), which would put a pollable file into blocking mode.
func SetWinsize(f *os.File, width, height int) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}

	ws := &unix.Winsize{Row: uint16(height), Col: uint16(width)}
	var ioctlErr error
	if err := rc.Control(func(fd uintptr) {
		ioctlErr = unix.IoctlSetWinsize(int(fd), unix.TIOCSWINSZ, ws)
	}); err != nil {
		return err
	}
	return ioctlErr
}

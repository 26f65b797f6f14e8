//go:build !windows

package session

import (
	"os"
	"os/exec"
	"syscall"
)

// childTTYFd is the descriptor number of the slave inside the child, the
// first entry of ExtraFiles.
const childTTYFd = 3

// buildCommand prepares the client so that, between fork and exec, it
// leaves our session, starts its own and adopts the slave as controlling
// terminal. TIOCSCTTY is issued explicitly since opening the device is not
// enough on every platform. The slave is inherited, not closed, before exec.
func buildCommand(argv []string, slave *os.File) *exec.Cmd {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.ExtraFiles = []*os.File{slave}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    childTTYFd,
	}

	return cmd
}

//go:build !windows

package session

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func forwardedSignals(resize bool) []os.Signal {
	sigs := []os.Signal{unix.SIGHUP, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP}
	if resize {
		sigs = append(sigs, unix.SIGWINCH)
	}
	return sigs
}

func signalNotify(ch chan<- os.Signal, resize bool) {
	signal.Notify(ch, forwardedSignals(resize)...)
}

func signalStop(ch chan<- os.Signal) {
	signal.Stop(ch)
}

package session

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type fakeChild struct {
	got []os.Signal
}

func (c *fakeChild) Signal(sig os.Signal) error {
	c.got = append(c.got, sig)
	return nil
}

func newTestForwarder() (*forwarder, *bytes.Buffer, *fakeChild) {
	var master bytes.Buffer
	child := &fakeChild{}
	return &forwarder{
		master: &master,
		child:  child,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}, &master, child
}

func TestForwardControlBytes(t *testing.T) {
	tests := []struct {
		sig  os.Signal
		want []byte
	}{
		{unix.SIGINT, []byte{0x03}},
		{unix.SIGTSTP, []byte{0x1a}},
	}
	for _, tt := range tests {
		t.Run(tt.sig.String(), func(t *testing.T) {
			f, master, child := newTestForwarder()
			f.forward(tt.sig)

			if !bytes.Equal(master.Bytes(), tt.want) {
				t.Fatalf("master got %q, want %q", master.Bytes(), tt.want)
			}
			if len(child.got) != 0 {
				t.Fatalf("child must not be signalled, got %v", child.got)
			}
			if !f.terminationRequested {
				t.Fatal("termination not flagged")
			}
		})
	}
}

func TestForwardTerminationSignals(t *testing.T) {
	for _, sig := range []os.Signal{unix.SIGTERM, unix.SIGHUP} {
		f, master, child := newTestForwarder()
		f.forward(sig)

		if len(child.got) != 1 || child.got[0] != sig {
			t.Fatalf("child got %v, want [%s]", child.got, sig)
		}
		if master.Len() != 0 {
			t.Fatalf("nothing should be written to the master, got %q", master.Bytes())
		}
	}
}

func TestForwardSkipsReapedChild(t *testing.T) {
	f, _, child := newTestForwarder()
	f.childReaped = true
	f.forward(unix.SIGTERM)

	if len(child.got) != 0 {
		t.Fatalf("reaped child signalled: %v", child.got)
	}
	if !f.terminationRequested {
		t.Fatal("termination not flagged")
	}
}

func TestForwardSkipsClosedMaster(t *testing.T) {
	f, master, _ := newTestForwarder()
	f.masterClosed = true
	f.forward(unix.SIGINT)

	if master.Len() != 0 {
		t.Fatalf("closed master written: %q", master.Bytes())
	}
}

func TestForwardResize(t *testing.T) {
	f, master, child := newTestForwarder()
	calls := 0
	f.resize = func() error {
		calls++
		return nil
	}

	f.forward(unix.SIGWINCH)
	if calls != 1 {
		t.Fatalf("resize called %d times, want 1", calls)
	}
	if f.terminationRequested || master.Len() != 0 || len(child.got) != 0 {
		t.Fatal("SIGWINCH must only resize")
	}
}

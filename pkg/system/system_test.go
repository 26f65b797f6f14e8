package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creack/pty"
)

func openPty(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		slave.Close()
	})
	return master, slave
}

func TestCopyWinsize(t *testing.T) {
	srcMaster, srcSlave := openPty(t)
	dstMaster, dstSlave := openPty(t)

	if err := pty.Setsize(srcMaster, &pty.Winsize{Rows: 33, Cols: 111}); err != nil {
		t.Fatalf("pty.Setsize: %v", err)
	}
	if !IsTerminal(srcSlave) {
		t.Fatal("pty slave is not a terminal")
	}

	if err := CopyWinsize(srcSlave, dstMaster); err != nil {
		t.Fatalf("CopyWinsize: %v", err)
	}

	rows, cols, err := pty.Getsize(dstSlave)
	if err != nil {
		t.Fatalf("pty.Getsize: %v", err)
	}
	if rows != 33 || cols != 111 {
		t.Fatalf("size = %dx%d, want 111x33", cols, rows)
	}
}

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if IsTerminal(r) {
		t.Fatal("a pipe is not a terminal")
	}
	if _, _, err := TerminalSize(r); err == nil {
		t.Fatal("TerminalSize on a pipe should fail")
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pass")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := CheckReadableFile(file); err != nil {
		t.Fatalf("CheckReadableFile(file) = %v", err)
	}
	if err := CheckReadableFile(dir); !errors.Is(err, ErrIsDirectory) {
		t.Fatalf("CheckReadableFile(dir) = %v, want ErrIsDirectory", err)
	}
	if err := CheckReadableFile(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("CheckReadableFile(missing) = %v, want os.ErrNotExist", err)
	}
}

func TestScrubArgIgnoresForeignMemory(t *testing.T) {
	secret := strings.Repeat("s", 8)
	if ScrubArg(secret) {
		t.Fatal("ScrubArg must not touch strings outside os.Args")
	}
	if secret != "ssssssss" {
		t.Fatalf("secret modified: %q", secret)
	}
	if ScrubArg("") {
		t.Fatal("ScrubArg(\"\") = true")
	}
}

func TestDescribeProcess(t *testing.T) {
	got := DescribeProcess(context.Background(), os.Getpid())
	if !strings.Contains(got, "pid ") {
		t.Fatalf("DescribeProcess = %q", got)
	}
}

func TestSetWinsize(t *testing.T) {
	master, slave := openPty(t)

	if err := SetWinsize(master, 132, 43); err != nil {
		t.Fatalf("SetWinsize: %v", err)
	}

	rows, cols, err := pty.Getsize(slave)
	if err != nil {
		t.Fatalf("pty.Getsize: %v", err)
	}
	if rows != 43 || cols != 132 {
		t.Fatalf("size = %dx%d, want 132x43", cols, rows)
	}
}

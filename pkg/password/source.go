package password

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Kind selects where the password comes from.
type Kind int

const (
	Stdin Kind = iota
	FD
	File
	Literal
)

func (k Kind) String() string {
	switch k {
	case Stdin:
		return "stdin"
	case FD:
		return "fd"
	case File:
		return "file"
	case Literal:
		return "literal"
	default:
		return "unknown"
	}
}

var ErrInvalidFD = errors.New("invalid password file descriptor")

// Source is exactly one of stdin, an inherited descriptor, a file path or an
// in-memory secret. The zero value reads from stdin.
type Source struct {
	kind   Kind
	fd     int
	path   string
	secret []byte
}

func FromStdin() Source {
	return Source{kind: Stdin}
}

func FromFD(fd int) Source {
	return Source{kind: FD, fd: fd}
}

func FromFile(path string) Source {
	return Source{kind: File, path: path}
}

// FromLiteral copies secret, so the caller may scrub its own copy.
func FromLiteral(secret string) Source {
	return Source{kind: Literal, secret: []byte(secret)}
}

func (s Source) Kind() Kind {
	return s.kind
}

func (s Source) String() string {
	switch s.kind {
	case FD:
		return fmt.Sprintf("fd %d", s.fd)
	case File:
		return fmt.Sprintf("file %q", s.path)
	default:
		return s.kind.String()
	}
}

// Wipe zeroes a literal secret.
func (s Source) Wipe() {
	for i := range s.secret {
		s.secret[i] = 0
	}
}

// open returns the stream to copy from and the func that releases it.
// Stdin and inherited descriptors stay open after the copy.
func (s Source) open(stdin io.Reader) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	switch s.kind {
	case Stdin:
		return stdin, noop, nil
	case FD:
		if s.fd < 0 {
			return nil, nil, errors.Wrapf(ErrInvalidFD, "fd %d", s.fd)
		}
		if _, err := unix.FcntlInt(uintptr(s.fd), unix.F_GETFD, 0); err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidFD, "fd %d: %v", s.fd, err)
		}
		return fdReader(s.fd), noop, nil
	case File:
		f, err := os.Open(s.path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open password file %q: %w", s.path, err)
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("password source %s is not a stream", s.kind)
	}
}

// fdReader reads an inherited descriptor without wrapping it in an *os.File,
// whose finalizer would close a descriptor this process does not own.
type fdReader int

func (r fdReader) Read(p []byte) (int, error) {
	n, err := unix.Read(int(r), p)
	if err != nil {
		return 0, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Package password copies the session password to the pseudo-terminal once
// the client asks for it.
package password

import (
	"bytes"
	"io"
	"os"

	"sshpass/pkg/define"

	"github.com/sirupsen/logrus"
)

var newline = []byte{'\n'}

type Transmitter struct {
	src   Source
	stdin io.Reader
	log   *logrus.Entry
}

type Option func(*Transmitter)

// WithStdin replaces os.Stdin as the stream behind a Stdin source.
func WithStdin(r io.Reader) Option {
	return func(t *Transmitter) { t.stdin = r }
}

func WithLogger(log *logrus.Entry) Option {
	return func(t *Transmitter) { t.log = log }
}

func NewTransmitter(src Source, opts ...Option) *Transmitter {
	t := &Transmitter{
		src:   src,
		stdin: os.Stdin,
		log:   logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transmitter) Source() Source {
	return t.src
}

// Send writes the password followed by exactly one newline to dst. Stream
// sources are copied up to, not including, their first newline. Write
// failures are logged and never returned; only a source that cannot be
// opened is an error.
func (t *Transmitter) Send(dst io.Writer) error {
	if t.src.kind == Literal {
		t.reliableWrite(dst, t.src.secret)
		t.reliableWrite(dst, newline)
		return nil
	}

	r, closeFn, err := t.src.open(t.stdin)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			t.log.Debugf("close password source %s: %v", t.src, err)
		}
	}()

	t.copyLine(r, dst)
	t.reliableWrite(dst, newline)
	return nil
}

func (t *Transmitter) copyLine(r io.Reader, dst io.Writer) {
	buf := make([]byte, define.PasswordChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
				t.reliableWrite(dst, chunk[:i])
				return
			}
			t.reliableWrite(dst, chunk)
		}
		if err != nil {
			if err != io.EOF {
				t.log.Debugf("read password from %s: %v", t.src, err)
			}
			return
		}
		if n == 0 {
			return
		}
	}
}

// reliableWrite reports short or failed writes without retrying them.
func (t *Transmitter) reliableWrite(dst io.Writer, p []byte) {
	if len(p) == 0 {
		return
	}
	n, err := dst.Write(p)
	if err != nil {
		t.log.Warnf("write failed: %v", err)
		return
	}
	if n != len(p) {
		t.log.Warnf("short write: tried to write %d, only wrote %d", len(p), n)
	}
}

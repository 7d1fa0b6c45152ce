package output

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// KeyReader reads a single keypress without waiting for Enter. The
// pager depends on this interface so tests can script the input.
type KeyReader interface {
	ReadKey() (byte, error)
}

// TerminalKeyReader reads one raw byte at a time from the controlling
// terminal. It remembers the saved terminal state while a raw-mode
// read is in flight so Restore can undo it from a signal handler.
type TerminalKeyReader struct {
	in *os.File

	mu    sync.Mutex
	fd    int
	saved *term.State
}

// NewTerminalKeyReader returns a key reader over in, usually os.Stdin.
func NewTerminalKeyReader(in *os.File) *TerminalKeyReader {
	return &TerminalKeyReader{in: in}
}

// ReadKey puts the terminal into raw mode for the duration of a single
// one-byte read, restoring the previous state before returning. When in
// is not a terminal (scripted input), it falls back to a plain read.
func (r *TerminalKeyReader) ReadKey() (byte, error) {
	fd := int(r.in.Fd())
	state, err := term.MakeRaw(fd)
	if err == nil {
		r.mu.Lock()
		r.fd = fd
		r.saved = state
		r.mu.Unlock()
		defer r.Restore()
	}

	var buf [1]byte
	n, err := r.in.Read(buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return buf[0], nil
}

// Restore undoes raw mode if a read is currently blocked in it, and is
// a no-op otherwise. An interrupt can arrive mid-keypress; exiting
// without this would leave the terminal raw.
func (r *TerminalKeyReader) Restore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved != nil {
		_ = term.Restore(r.fd, r.saved)
		r.saved = nil
	}
}

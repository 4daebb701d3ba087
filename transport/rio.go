package transport

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// IOError is a genuine failure of the underlying stream. Interrupted calls never end up
// wrapped in it, as they're retried instead.
type IOError struct {
	Op  string
	Err error
}

// Error wraps a failure of the operation op.
func Error(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

func (e *IOError) Error() string {
	return "transport: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Cause makes errors.Cause stop at the original failure.
func (e *IOError) Cause() error {
	return e.Err
}

// IsInterrupted reports whether the call was interrupted by a signal before transferring
// anything and therefore must be simply retried.
func IsInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}

// IsIOError reports whether err is (or wraps) a transport failure.
func IsIOError(err error) bool {
	var ioerr *IOError
	return errors.As(err, &ioerr)
}

// ReadN reads from src until p is full or the stream ends, without any buffering. Only
// the number of bytes actually read is returned on the end of stream, io.EOF is reported
// only if nothing was read at all.
func ReadN(src io.Reader, p []byte) (n int, err error) {
	for n < len(p) {
		nread, err := src.Read(p[n:])
		n += nread

		switch {
		case err == nil:
			if nread == 0 {
				return n, eofIfEmpty(n)
			}
		case IsInterrupted(err):
		case err == io.EOF:
			return n, eofIfEmpty(n)
		default:
			return n, Error("read", err)
		}
	}

	return n, nil
}

func eofIfEmpty(n int) error {
	if n == 0 {
		return io.EOF
	}

	return nil
}

// WriteN transfers the whole p into dst, retrying short and interrupted writes. An
// interrupted call contributes nothing and is simply repeated, whereas any other failure
// or a write making no progress aborts the transfer.
func WriteN(dst io.Writer, p []byte) (n int, err error) {
	for left := len(p); left > 0; left = len(p) - n {
		written, err := dst.Write(p[n:])
		if written > 0 {
			n += written
		}

		switch {
		case err == nil:
			if written <= 0 {
				return n, Error("write", io.ErrShortWrite)
			}
		case IsInterrupted(err):
		default:
			return n, Error("write", err)
		}
	}

	return n, nil
}

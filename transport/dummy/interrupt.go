package dummy

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// InterruptingReader fails every other call with EINTR before passing it to the wrapped
// reader. Calls counter is exported for checking how many reads were actually made.
type InterruptingReader struct {
	R     io.Reader
	Calls int
}

func (i *InterruptingReader) Read(p []byte) (int, error) {
	i.Calls++
	if i.Calls%2 == 1 {
		return 0, unix.EINTR
	}

	return i.R.Read(p)
}

// FailingReader returns an error from the very first call.
type FailingReader struct {
	Err error
}

func (f FailingReader) Read([]byte) (int, error) {
	if f.Err == nil {
		return 0, errors.New("connection reset by peer")
	}

	return 0, f.Err
}

// ShortWriter accepts at most Max bytes per call. If Interrupt is set, every other call
// fails with EINTR without writing anything.
type ShortWriter struct {
	Data      []byte
	Max       int
	Interrupt bool
	Calls     int
}

func (s *ShortWriter) Write(p []byte) (int, error) {
	s.Calls++
	if s.Interrupt && s.Calls%2 == 1 {
		return 0, unix.EINTR
	}

	n := min(len(p), s.Max)
	s.Data = append(s.Data, p[:n]...)

	return n, nil
}

// BrokenWriter accepts Accept bytes and then fails with Err.
type BrokenWriter struct {
	Data   []byte
	Accept int
	Err    error
}

func (b *BrokenWriter) Write(p []byte) (int, error) {
	n := min(len(p), b.Accept-len(b.Data))
	b.Data = append(b.Data, p[:n]...)
	if n < len(p) {
		return n, b.Err
	}

	return n, nil
}

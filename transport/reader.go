package transport

import (
	"io"

	"github.com/olive-web/olive/internal/buffer"
)

// Reader is a connection-scoped buffered reader. Every refill issues exactly one read of
// up to the buffer capacity, interrupted reads are retried transparently. It must not be
// used concurrently.
type Reader struct {
	src     io.Reader
	buff    []byte
	pending []byte
	line    buffer.Buffer
}

// NewReader binds a new reader to the source. The capacity must be positive.
func NewReader(src io.Reader, capacity int) *Reader {
	return &Reader{
		src:  src,
		buff: make([]byte, capacity),
	}
}

// Buffered returns the number of bytes that can be read without touching the source.
func (r *Reader) Buffered() int {
	return len(r.pending)
}

// fill issues a single read if nothing is pending. io.EOF is returned on end of stream,
// pending stays empty in that case.
func (r *Reader) fill() error {
	for len(r.pending) == 0 {
		n, err := r.src.Read(r.buff)
		if n > 0 {
			r.pending = r.buff[:n]
			return nil
		}

		switch {
		case err == nil:
			// zero bytes without an error is treated the same as the end of stream
			return io.EOF
		case IsInterrupted(err):
			continue
		case err == io.EOF:
			return io.EOF
		default:
			return Error("read", err)
		}
	}

	return nil
}

// Read copies up to len(p) bytes from the buffer, refilling it beforehand if it is
// empty. At most one read of the source is made per call, so n may be lower than len(p)
// even though the stream isn't exhausted yet.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if err = r.fill(); err != nil {
		return 0, err
	}

	n = copy(p, r.pending)
	r.pending = r.pending[n:]

	return n, nil
}

// ReadN reads until p is full or the stream ends. Hitting the end of stream after some
// bytes were already read isn't an error, io.EOF is returned only if nothing was read.
func (r *Reader) ReadN(p []byte) (n int, err error) {
	for n < len(p) {
		nread, err := r.Read(p[n:])
		if err != nil {
			if err == io.EOF && n > 0 {
				break
			}

			return n, err
		}

		n += nread
	}

	return n, nil
}

// ReadLine collects bytes one by one until the line feed is consumed (it is kept in the
// result) or maxLen-1 bytes are collected. Nothing past the line feed is consumed, so the
// next call starts exactly at the following line. io.EOF is returned only when the stream
// ended before any byte was read; a partial line at the end of stream is returned as is.
//
// The returned slice is valid until the next call.
func (r *Reader) ReadLine(maxLen int) ([]byte, error) {
	if r.line.Limit() != maxLen-1 {
		r.line = buffer.New(maxLen, maxLen-1)
	}

	r.line.Clear()

	for r.line.SegmentLength() < maxLen-1 {
		if err := r.fill(); err != nil {
			if err == io.EOF && r.line.SegmentLength() > 0 {
				break
			}

			return nil, err
		}

		c := r.pending[0]
		r.pending = r.pending[1:]
		r.line.AppendByte(c)
		if c == '\n' {
			break
		}
	}

	return r.line.Finish(), nil
}

package dummy

import (
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is an in-memory connection. Reads return the chunks it was initialised with one by
// one (so chunk boundaries are preserved), writes are accumulated in Data.
type Conn struct {
	Data   []byte
	Closed bool
	chunks [][]byte
	nop    bool
}

func NewConn(chunks ...[]byte) *Conn {
	return &Conn{chunks: chunks}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	for len(c.chunks) > 0 && len(c.chunks[0]) == 0 {
		c.chunks = c.chunks[1:]
	}

	if len(c.chunks) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.chunks[0])
	c.chunks[0] = c.chunks[0][n:]

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if !c.nop {
		c.Data = append(c.Data, b...)
	}

	return len(b), nil
}

func (c *Conn) Close() error {
	c.Closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 12345}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// Nop makes the connection discard everything written into it.
func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}

// Split cuts data into pieces of at most n bytes.
func Split(data []byte, n int) (chunks [][]byte) {
	for len(data) > n {
		chunks = append(chunks, data[:n])
		data = data[n:]
	}

	return append(chunks, data)
}

package transport

import (
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/olive-web/olive/config"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// OnConn processes a single connection to the end. A non-nil error stops the accept loop.
type OnConn func(conn net.Conn) error

// TCP accepts connections one at a time: the next connection is accepted only after the
// callback for the previous one returned and the connection was closed.
type TCP struct {
	l    listener
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{stop: atomic.NewBool(false)}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr)
	return errors.Wrap(err, "bind")
}

// Addr returns the bound address. Must be called only after a successful Bind.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

func (t *TCP) Listen(cfg config.NET, cb OnConn) error {
	for !t.stop.Load() {
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if t.stop.Load() {
				return nil
			}

			return errors.Wrap(err, "accept")
		}

		err = cb(conn)
		_ = conn.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// Stop makes the accept loop exit at most after one AcceptLoopInterruptPeriod. The
// connection being processed at the moment is finished first.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() error {
	return t.l.Close()
}

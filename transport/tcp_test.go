package transport

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/olive-web/olive/config"
)

func testNET() config.NET {
	cfg := config.Default().NET
	cfg.AcceptLoopInterruptPeriod = 20 * time.Millisecond
	return cfg
}

func TestTCP(t *testing.T) {
	t.Run("sequential and closed after callback", func(t *testing.T) {
		tcp := NewTCP()
		require.NoError(t, tcp.Bind("127.0.0.1:0"))
		addr := tcp.Addr().String()

		var order []int
		errCh := make(chan error, 1)
		go func() {
			n := 0
			errCh <- tcp.Listen(testNET(), func(conn net.Conn) error {
				n++
				order = append(order, n)
				_, err := conn.Write([]byte{byte('0' + n)})
				if n == 3 {
					tcp.Stop()
				}

				return err
			})
		}()

		for i := 1; i <= 3; i++ {
			conn, err := net.Dial("tcp", addr)
			require.NoError(t, err)
			// reading till EOF proves the server closed the connection
			data, err := io.ReadAll(conn)
			require.NoError(t, err)
			require.Equal(t, string(rune('0'+i)), string(data))
			require.NoError(t, conn.Close())
		}

		require.NoError(t, <-errCh)
		require.Equal(t, []int{1, 2, 3}, order)
		require.NoError(t, tcp.Close())
	})

	t.Run("callback error stops the loop", func(t *testing.T) {
		tcp := NewTCP()
		require.NoError(t, tcp.Bind("127.0.0.1:0"))
		defer tcp.Close()

		fatal := errors.New("fatal")
		errCh := make(chan error, 1)
		go func() {
			errCh <- tcp.Listen(testNET(), func(net.Conn) error {
				return fatal
			})
		}()

		conn, err := net.Dial("tcp", tcp.Addr().String())
		require.NoError(t, err)
		defer conn.Close()

		select {
		case err = <-errCh:
			require.Equal(t, fatal, err)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "accept loop didn't stop")
		}
	})

	t.Run("stop while idle", func(t *testing.T) {
		tcp := NewTCP()
		require.NoError(t, tcp.Bind("127.0.0.1:0"))
		defer tcp.Close()

		errCh := make(chan error, 1)
		go func() {
			errCh <- tcp.Listen(testNET(), func(net.Conn) error {
				return nil
			})
		}()

		tcp.Stop()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			require.FailNow(t, "accept loop didn't stop")
		}
	})

	t.Run("bind failure", func(t *testing.T) {
		tcp := NewTCP()
		require.Error(t, tcp.Bind("127.0.0.1:99999"))
	})
}

package olive

import (
	"bufio"
	"fmt"
	"io"
	"net"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olive-web/olive/config"
)

const adder = `#!/bin/sh
a=${QUERY_STRING%%&*}
b=${QUERY_STRING#*&}
printf 'Content-type: text/html\r\n\r\n'
printf 'Welcome to add.com: THE Internet addition portal.\r\n<p>'
printf 'The answer is: %d + %d = %d\r\n<p>' "$a" "$b" $((a + b))
printf 'Thanks for visiting!\r\n'
`

type syncLogger struct {
	mu    sync.Mutex
	lines []string
}

func (s *syncLogger) Printf(format string, v ...any) {
	s.mu.Lock()
	s.lines = append(s.lines, fmt.Sprintf(format, v...))
	s.mu.Unlock()
}

func (s *syncLogger) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func writeFile(t *testing.T, root, name, content string, perm os.FileMode) {
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
}

type running struct {
	app    *App
	addr   string
	logger *syncLogger
	errCh  chan error
}

func run(t *testing.T, root string) running {
	cfg := config.Default()
	cfg.Static.Root = root
	cfg.NET.AcceptLoopInterruptPeriod = 50 * time.Millisecond
	cfg.NET.ReadTimeout = 5 * time.Second

	app, err := New("127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	logger := new(syncLogger)
	app.Tune(cfg).Logger(logger).NotifyOnStart(func() {
		close(started)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Serve()
	}()

	select {
	case <-started:
	case err := <-errCh:
		require.FailNow(t, "server didn't start", err)
	}

	return running{app: app, addr: app.Addr().String(), logger: logger, errCh: errCh}
}

func (r running) stop(t *testing.T) {
	r.app.Stop()
	select {
	case err := <-r.errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "server didn't stop")
	}
}

func exchange(t *testing.T, addr, request string) string {
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(request))
	require.NoError(t, err)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	// the server closes the connection once the response is complete
	data, err := io.ReadAll(conn)
	require.NoError(t, err)

	return string(data)
}

func parse(t *testing.T, raw string) (*stdhttp.Response, string) {
	resp, err := stdhttp.ReadResponse(bufio.NewReader(strings.NewReader(raw)), nil)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestApp(t *testing.T) {
	root := t.TempDir()
	home := "<html><body>Hello from Olive</body></html>\n"
	writeFile(t, root, "home.html", home, 0o644)
	writeFile(t, root, "cgi-bin/adder", adder, 0o755)

	srv := run(t, root)
	defer srv.stop(t)

	t.Run("static", func(t *testing.T) {
		raw := exchange(t, srv.addr, "GET /home.html HTTP/1.0\r\n\r\n")
		require.True(t, strings.HasPrefix(raw, "HTTP/1.0 200 OK\r\n"))
		require.Contains(t, raw, "Server: Olive Web Server\r\n")
		require.Contains(t, raw, "Connection: close\r\n")

		resp, body := parse(t, raw)
		require.Equal(t, int64(len(home)), resp.ContentLength)
		require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		require.Equal(t, home, body)
	})

	t.Run("default file", func(t *testing.T) {
		_, body := parse(t, exchange(t, srv.addr, "GET / HTTP/1.0\r\nUser-Agent: test\r\n\r\n"))
		require.Equal(t, home, body)
	})

	t.Run("not found", func(t *testing.T) {
		resp, body := parse(t, exchange(t, srv.addr, "GET /nope.html HTTP/1.0\r\n\r\n"))
		require.Equal(t, 404, resp.StatusCode)
		require.Equal(t, "404 Not found", resp.Status)
		require.Equal(t, int64(len(body)), resp.ContentLength)
		require.Contains(t, body, "Olive couldn't find this file")
	})

	t.Run("not implemented", func(t *testing.T) {
		resp, body := parse(t, exchange(t, srv.addr, "POST / HTTP/1.0\r\n\r\n"))
		require.Equal(t, 501, resp.StatusCode)
		require.Contains(t, body, "POST")
	})

	t.Run("dynamic", func(t *testing.T) {
		raw := exchange(t, srv.addr, "GET /cgi-bin/adder?15&20 HTTP/1.0\r\n\r\n")
		require.True(t, strings.HasPrefix(raw, "HTTP/1.0 200 OK\r\nServer: Olive Web Server\r\nContent-type: text/html\r\n"))

		_, body := parse(t, raw)
		require.Contains(t, body, "The answer is: 15 + 20 = 35")
	})

	t.Run("client disconnects without a request", func(t *testing.T) {
		conn, err := net.Dial("tcp", srv.addr)
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		// the server must keep accepting after that
		resp, _ := parse(t, exchange(t, srv.addr, "GET /home.html HTTP/1.0\r\n\r\n"))
		require.Equal(t, 200, resp.StatusCode)
	})

	require.Contains(t, strings.Join(srv.logger.Lines(), "\n"), "Accepted connection from (127.0.0.1, ")
}

func TestApp_Sequential(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "home.html", "home", 0o644)
	srv := run(t, root)

	const connections = 10
	for range connections {
		_, body := parse(t, exchange(t, srv.addr, "GET / HTTP/1.0\r\n\r\n"))
		require.Equal(t, "home", body)
	}

	srv.stop(t)
	require.Equal(t, uint64(connections), srv.app.Served())

	_, err := net.DialTimeout("tcp", srv.addr, time.Second)
	require.Error(t, err, "the socket must be closed after Serve returned")
}

func TestApp_Hooks(t *testing.T) {
	var stopped bool
	root := t.TempDir()

	app, err := New("127.0.0.1:0")
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Static.Root = root
	cfg.NET.AcceptLoopInterruptPeriod = 20 * time.Millisecond

	app.Tune(cfg).
		NotifyOnStart(app.Stop).
		NotifyOnStop(func() {
			stopped = true
		})

	require.NoError(t, app.Serve())
	require.True(t, stopped)
}

func TestNew(t *testing.T) {
	_, err := New("localhost")
	require.Error(t, err)

	app, err := New("8080")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", app.addr.String())
}

func TestApp_InvalidConfig(t *testing.T) {
	app, err := New("127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.NET.ReadBufferSize = 0
	require.Error(t, app.Tune(cfg).Serve())
}

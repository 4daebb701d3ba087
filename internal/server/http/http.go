package http

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/olive-web/olive/config"
	"github.com/olive-web/olive/http/method"
	"github.com/olive-web/olive/http/status"
	"github.com/olive-web/olive/internal/cgi"
	"github.com/olive-web/olive/internal/protocol/http1"
	"github.com/olive-web/olive/internal/resource"
	"github.com/olive-web/olive/transport"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Server drives a single connection from the request line to the end of the response.
// Failures of the connection itself are logged and swallowed, only failures making the
// whole service unreliable are returned.
type Server struct {
	cfg    *config.Config
	logger Logger
	runner cgi.Runner
}

func NewServer(cfg *config.Config, logger Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		runner: cgi.NewRunner(cfg.CGI),
	}
}

// Serve processes exactly one request. The connection isn't closed, that's up to the
// caller. A non-nil error is always a *http1.ResourceError.
func (s *Server) Serve(conn net.Conn) error {
	if host, port, err := net.SplitHostPort(conn.RemoteAddr().String()); err == nil {
		s.logger.Printf("Accepted connection from (%s, %s)", host, port)
	}

	if timeout := s.cfg.NET.ReadTimeout; timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return s.onConnError(err)
		}
	}

	return s.classify(s.handle(conn))
}

// classify decides whether the error is fatal for the whole service. Everything except
// a resource failure affects only the current connection.
func (s *Server) classify(err error) error {
	var rerr *http1.ResourceError
	if errors.As(err, &rerr) {
		return err
	}

	return s.onConnError(err)
}

func (s *Server) handle(conn net.Conn) error {
	reader := transport.NewReader(conn, s.cfg.NET.ReadBufferSize)
	parser := http1.NewParser(reader, s.cfg.URI.RequestLineSize.Maximal, s.logger, s.cfg.Log.Headers)
	serializer := http1.NewSerializer(conn, s.cfg.Server.Name, s.logger, s.cfg.Log.Headers)

	request, err := parser.ReadRequest()
	switch err {
	case nil:
	case io.EOF:
		// the client disconnected without sending anything
		return nil
	default:
		return err
	}

	if method.Parse(request.Method) != method.GET {
		return serializer.Error(status.ErrMethodNotImplemented.WithCause(request.Method))
	}

	if err = parser.DrainHeaders(); err != nil {
		return err
	}

	if s.cfg.Static.RejectTraversal && !resource.IsSafe(request.Target) {
		return serializer.Error(status.ErrNotFound.WithCause(request.Target))
	}

	res := resource.Resolve(s.cfg.Static, s.cfg.CGI, request.Target)
	info, err := os.Stat(res.Path)
	if err != nil {
		return serializer.Error(status.ErrNotFound.WithCause(res.Path))
	}

	if !res.Dynamic {
		if !info.Mode().IsRegular() || info.Mode().Perm()&0o400 == 0 {
			return serializer.Error(status.ErrForbiddenRead.WithCause(res.Path))
		}

		return serializer.Static(res.Path, info.Size())
	}

	if !info.Mode().IsRegular() || info.Mode().Perm()&0o100 == 0 {
		return serializer.Error(status.ErrForbiddenExec.WithCause(res.Path))
	}

	if err = serializer.DynamicPreamble(); err != nil {
		return err
	}

	// the connection must not be closed until the program exits, as it writes into it
	if err = s.runner.Run(res.Path, res.Args, conn); err != nil {
		s.logger.Printf("cgi %s: %v", res.Path, err)
	}

	return nil
}

func (s *Server) onConnError(err error) error {
	if err != nil {
		s.logger.Printf("connection aborted: %v", err)
	}

	return nil
}

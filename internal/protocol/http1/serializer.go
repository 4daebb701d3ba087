package http1

import (
	"html"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/olive-web/olive/http/mime"
	"github.com/olive-web/olive/http/status"
	"github.com/olive-web/olive/internal/buffer"
	"github.com/olive-web/olive/internal/filemap"
	"github.com/olive-web/olive/transport"
)

const (
	protocol = "HTTP/1.0 "
	crlf     = "\r\n"

	// headersSpace limits the response head. Only an absurdly long server name or
	// error cause could ever hit it.
	headersSpace = 64 * 1024
)

// ErrHeadersTooLarge is returned when the response head doesn't fit into headersSpace.
var ErrHeadersTooLarge = errors.New("response headers are too large")

// ResourceError reports a failure of the filesystem after the resource was found
// eligible for serving, e.g. it vanished or couldn't be mapped.
type ResourceError struct {
	Path string
	Err  error
}

func (r *ResourceError) Error() string {
	return "resource " + r.Path + ": " + r.Err.Error()
}

func (r *ResourceError) Unwrap() error {
	return r.Err
}

// Serializer renders responses into the connection. Every method produces exactly one
// response and must be called at most once per connection.
type Serializer struct {
	w      io.Writer
	buff   buffer.Buffer
	server string
	logger Logger
	// verbose makes the static path echo its response head.
	verbose bool
}

func NewSerializer(w io.Writer, server string, logger Logger, verbose bool) *Serializer {
	return &Serializer{
		w:       w,
		buff:    buffer.New(512, headersSpace),
		server:  server,
		logger:  logger,
		verbose: verbose,
	}
}

// Error writes an HTML page describing the error. The Content-length always matches the
// page exactly.
func (s *Serializer) Error(herr status.HTTPError) error {
	body := errorPage(herr)
	s.buff.Clear()

	ok := s.appendStatusLine(status.StringCode(herr.Code), herr.Short) &&
		s.appendHeader("Content-type", mime.HTML) &&
		s.appendHeader("Content-length", strconv.Itoa(len(body))) &&
		s.buff.AppendString(crlf) &&
		s.buff.AppendString(body)
	if !ok {
		return ErrHeadersTooLarge
	}

	_, err := transport.WriteN(s.w, s.buff.Finish())
	return err
}

func errorPage(herr status.HTTPError) string {
	return "<html><title>Olive Error</title><body bgcolor=ffffff>" + crlf +
		status.StringCode(herr.Code) + ": " + herr.Short + crlf +
		"<p>" + herr.Long + ": " + html.EscapeString(herr.Cause) + crlf +
		"<hr><em>The Olive Web server</em>" + crlf
}

// Static writes the head and streams the file's contents. The size must be taken from the
// file's metadata, it's used both as the Content-length and the length of the mapping.
// The mapping is released on every path, including a failed write.
func (s *Serializer) Static(path string, size int64) (err error) {
	s.buff.Clear()

	ok := s.appendStatusLine(status.StringCode(status.OK), string(status.Text(status.OK))) &&
		s.appendHeader("Server", s.server) &&
		s.appendHeader("Connection", "close") &&
		s.appendHeader("Content-length", strconv.FormatInt(size, 10)) &&
		s.appendHeader("Content-type", mime.ByFilename(path)) &&
		s.buff.AppendString(crlf)
	if !ok {
		return ErrHeadersTooLarge
	}

	head := s.buff.Finish()
	if _, err = transport.WriteN(s.w, head); err != nil {
		return err
	}

	if s.verbose {
		s.logger.Printf("Response headers:\n%s", head)
	}

	mapping, err := filemap.Map(path, size)
	if err != nil {
		return &ResourceError{Path: path, Err: err}
	}

	defer func() {
		if rerr := mapping.Release(); rerr != nil && err == nil {
			err = &ResourceError{Path: path, Err: rerr}
		}
	}()

	_, err = transport.WriteN(s.w, mapping.Bytes())
	return err
}

// DynamicPreamble writes the status line and the Server header only. The rest of the head
// and the body are up to the delegated program, the connection's end frames the response.
func (s *Serializer) DynamicPreamble() error {
	s.buff.Clear()

	ok := s.appendStatusLine(status.StringCode(status.OK), string(status.Text(status.OK))) &&
		s.appendHeader("Server", s.server)
	if !ok {
		return ErrHeadersTooLarge
	}

	_, err := transport.WriteN(s.w, s.buff.Finish())
	return err
}

func (s *Serializer) appendStatusLine(code, reason string) bool {
	return s.buff.AppendString(protocol) &&
		s.buff.AppendString(code) &&
		s.buff.AppendByte(' ') &&
		s.buff.AppendString(reason) &&
		s.buff.AppendString(crlf)
}

func (s *Serializer) appendHeader(key, value string) bool {
	return s.buff.AppendString(key) &&
		s.buff.AppendString(": ") &&
		s.buff.AppendString(value) &&
		s.buff.AppendString(crlf)
}

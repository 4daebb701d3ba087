package http1

import (
	"io"

	"github.com/indigo-web/utils/uf"

	"github.com/olive-web/olive/http"
	"github.com/olive-web/olive/transport"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Parser consumes the request line and the header block from the connection. Headers
// aren't retained, but the block is always read up to its end.
type Parser struct {
	reader  *transport.Reader
	maxLen  int
	logger  Logger
	verbose bool
}

// NewParser returns a parser reading lines of at most maxLen-1 bytes. If verbose is set,
// every consumed line is printed to the logger.
func NewParser(reader *transport.Reader, maxLen int, logger Logger, verbose bool) *Parser {
	return &Parser{
		reader:  reader,
		maxLen:  maxLen,
		logger:  logger,
		verbose: verbose,
	}
}

// ReadRequest reads and splits the request line. io.EOF means the client disconnected
// before sending anything.
func (p *Parser) ReadRequest() (http.Request, error) {
	line, err := p.reader.ReadLine(p.maxLen)
	if err != nil {
		return http.Request{}, err
	}

	p.echo(line)

	// the line buffer is reused by subsequent reads, so the tokens must own their memory
	return http.ParseRequestLine(string(line)), nil
}

// DrainHeaders discards lines until the empty one. The end of stream terminates the
// header block as well.
func (p *Parser) DrainHeaders() error {
	for {
		line, err := p.reader.ReadLine(p.maxLen)
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}

		p.echo(line)

		if isEmptyLine(line) {
			return nil
		}
	}
}

func (p *Parser) echo(line []byte) {
	if p.verbose {
		p.logger.Printf("%s", http.Escape(uf.B2S(line)))
	}
}

// isEmptyLine accepts a bare LF as well, as some clients terminate lines with it only.
func isEmptyLine(line []byte) bool {
	return uf.B2S(line) == "\r\n" || uf.B2S(line) == "\n"
}

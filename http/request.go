package http

import (
	"strings"
)

// Request holds the tokens of a request line. Missing tokens stay empty, as the request
// line is never rejected for being malformed.
type Request struct {
	Method  string
	Target  string
	Version string
}

// ParseRequestLine splits the line on whitespace and takes the first three tokens. The
// trailing line terminator is treated as whitespace.
func ParseRequestLine(line string) (request Request) {
	fields := [3]*string{&request.Method, &request.Target, &request.Version}

	for i := 0; i < len(fields); i++ {
		line = strings.TrimLeft(line, whitespace)
		if len(line) == 0 {
			break
		}

		end := strings.IndexAny(line, whitespace)
		if end == -1 {
			end = len(line)
		}

		*fields[i] = line[:end]
		line = line[end:]
	}

	return request
}

const whitespace = " \t\r\n\v\f"

// Complete reports whether all three tokens are present.
func (r Request) Complete() bool {
	return len(r.Method) > 0 && len(r.Target) > 0 && len(r.Version) > 0
}

// String renders the request line back, without the terminator.
func (r Request) String() string {
	return r.Method + " " + r.Target + " " + r.Version
}

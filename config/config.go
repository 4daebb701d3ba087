package config

import (
	"time"
)

type (
	URIRequestLineSize struct {
		// Maximal is the maxLen passed to the line reader for both the request line and
		// every header line. Lines longer than Maximal-1 bytes are read in pieces.
		Maximal int
	}
)

type (
	URI struct {
		RequestLineSize URIRequestLineSize
	}

	NET struct {
		// ReadBufferSize is a capacity of the buffer, in which the data is read from the
		// socket. Every refill issues exactly one read of up to this size.
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, it'll be closed. Zero disables the deadline.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Static struct {
		// Root is prefixed onto request targets in order to get a filesystem path. The
		// concatenation is literal, so the root must not end with a slash.
		Root string
		// DefaultFile is appended to static targets ending with a slash.
		DefaultFile string
		// RejectTraversal makes targets containing a double dot respond with 404. Disabled
		// by default, as the targets are used as-is otherwise.
		RejectTraversal bool `test:"nullable"`
	}

	CGI struct {
		// Marker is a substring, presence of which anywhere in the target makes it dynamic.
		Marker string
		// QueryEnv is the name of the environment variable carrying the query string.
		QueryEnv string
		// InheritEnv makes the delegated program see the server's environment in addition
		// to the query variable.
		InheritEnv bool `test:"nullable"`
	}

	Server struct {
		// Name is the value of the Server header.
		Name string
	}

	Log struct {
		// Headers enables echoing of the request line and every drained header line.
		Headers bool `test:"nullable"`
	}
)

// Config holds settings used across various parts of olive, mainly limits and the layout
// of the document root.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI    URI
	NET    NET
	Static Static
	CGI    CGI
	Server Server
	Log    Log
}

// Default returns default config.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: URIRequestLineSize{
				Maximal: 8 * 1024,
			},
		},
		NET: NET{
			ReadBufferSize:            8 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Static: Static{
			Root:        ".",
			DefaultFile: "home.html",
		},
		CGI: CGI{
			Marker:     "cgi",
			QueryEnv:   "QUERY_STRING",
			InheritEnv: true,
		},
		Server: Server{
			Name: "Olive Web Server",
		},
		Log: Log{
			Headers: true,
		},
	}
}

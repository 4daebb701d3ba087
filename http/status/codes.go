package status

import (
	"strconv"
)

type (
	Code   uint16
	Status string
)

// HTTP status codes produced by the server. See RFC 9110 for the whole registry.
const (
	OK Code = 200 // RFC 9110, 15.3.1

	Forbidden Code = 403 // RFC 9110, 15.5.4
	NotFound  Code = 404 // RFC 9110, 15.5.5

	NotImplemented Code = 501 // RFC 9110, 15.6.2
)

// KnownCodes lists every code Text knows about.
var KnownCodes = []Code{OK, Forbidden, NotFound, NotImplemented}

// Text returns a reason phrase for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case NotImplemented:
		return "Not Implemented"
	default:
		return ""
	}
}

// StringCode returns the decimal representation of the code.
func StringCode(code Code) string {
	return strconv.FormatUint(uint64(code), 10)
}

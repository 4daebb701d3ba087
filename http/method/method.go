package method

import (
	"github.com/indigo-web/utils/strcomp"
)

type Method uint8

const (
	Unknown Method = iota
	GET
)

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	default:
		return "UNKNOWN"
	}
}

// Parse matches the token case-insensitively against the supported methods. Anything
// else, including the empty string, is Unknown.
func Parse(str string) Method {
	if strcomp.EqualFold(str, "GET") {
		return GET
	}

	return Unknown
}

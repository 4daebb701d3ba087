package http

import (
	"strconv"

	"github.com/indigo-web/utils/uf"
)

// Escape makes the string safe for printing into a log: every byte that isn't printable
// ASCII is replaced by its escape sequence. Strings needing no escaping are returned as is,
// without any allocations.
func Escape(s string) string {
	var (
		buff   []byte
		offset int
	)

	for i := 0; i < len(s); i++ {
		if isASCIIPrintable(s[i]) {
			continue
		}

		if buff == nil {
			buff = make([]byte, 0, len(s)+len(s)/2+4)
		}

		buff = append(buff, s[offset:i]...)
		buff = appendEscaped(buff, s[i])
		offset = i + 1
	}

	if buff == nil {
		return s
	}

	return uf.B2S(append(buff, s[offset:]...))
}

func isASCIIPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

func appendEscaped(buff []byte, c byte) []byte {
	switch c {
	case '\r':
		return append(buff, `\r`...)
	case '\n':
		return append(buff, `\n`...)
	case '\t':
		return append(buff, `\t`...)
	case 0:
		return append(buff, `\0`...)
	}

	buff = append(buff, `\x`...)
	if c < 0x10 {
		buff = append(buff, '0')
	}

	return strconv.AppendUint(buff, uint64(c), 16)
}

package mime

import (
	"strings"
)

type MIME = string

const (
	Plain MIME = "text/plain"
	HTML  MIME = "text/html"
	GIF   MIME = "image/gif"
	PNG   MIME = "image/png"
	JPEG  MIME = "image/jpeg"
)

// Suffix maps a filename suffix to its MIME.
type Suffix struct {
	Suffix string
	MIME   MIME
}

// Suffixes is consulted top to bottom, the first matching entry wins.
var Suffixes = []Suffix{
	{".html", HTML},
	{".gif", GIF},
	{".png", PNG},
	{".jpg", JPEG},
}

// Fallback is used for files matching no entry in Suffixes.
const Fallback = Plain

// ByFilename returns the MIME for the file.
func ByFilename(filename string) MIME {
	for _, entry := range Suffixes {
		if strings.HasSuffix(filename, entry.Suffix) {
			return entry.MIME
		}
	}

	return Fallback
}

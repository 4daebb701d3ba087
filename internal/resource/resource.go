// Package resource maps request targets onto the document root.
package resource

import (
	"strings"

	"github.com/olive-web/olive/config"
)

// Resource is a target resolved against the document root. It is derived from the target
// by string transformations only, without touching the filesystem.
type Resource struct {
	Path    string
	Dynamic bool
	// Args is the query string of a dynamic target, not including the question mark.
	Args string
}

// Resolve classifies the target and forms its filesystem path. A target containing the
// CGI marker anywhere (not only as a path prefix) is dynamic.
func Resolve(cfg config.Static, cgi config.CGI, target string) Resource {
	if !strings.Contains(target, cgi.Marker) {
		path := cfg.Root + target
		if strings.HasSuffix(target, "/") {
			path += cfg.DefaultFile
		}

		return Resource{Path: path}
	}

	target, args, _ := strings.Cut(target, "?")

	return Resource{
		Path:    cfg.Root + target,
		Dynamic: true,
		Args:    args,
	}
}

// IsSafe reports whether the target contains no double dots, through which it could
// escape the document root.
func IsSafe(target string) bool {
	return !strings.Contains(target, "..")
}

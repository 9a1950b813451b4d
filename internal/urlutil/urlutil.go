// Package urlutil holds the small URL and byte-stream helpers shared by the
// DZI, IIIF, and krpano frontends: BOM stripping ahead of XML parsing, and
// base-relative URL resolution.
package urlutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RemoveBOM strips a leading UTF-8 byte order mark, if present. At least one
// XML parser in the wild rejects BOM-prefixed input, so every descriptor
// byte slice is passed through this before being handed to encoding/xml.
func RemoveBOM(contents []byte) []byte {
	if len(contents) >= len(utf8BOM) && string(contents[:len(utf8BOM)]) == string(utf8BOM) {
		return contents[len(utf8BOM):]
	}
	return contents
}

// ResolveRelative resolves path against base:
//  1. If path itself parses as an absolute URL, it is returned verbatim.
//  2. Else if base parses as an absolute URL, path is joined onto it per
//     RFC 3986.
//  3. Else both are treated as filesystem paths: the directory portion of
//     base is joined with path using the host's native separator.
func ResolveRelative(base, path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if baseURL, err := url.Parse(base); err == nil && baseURL.IsAbs() {
		if joined, err := baseURL.Parse(path); err == nil {
			return joined.String()
		}
	}
	dir := base
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		dir = base[:i]
	}
	return filepath.Join(dir, path)
}

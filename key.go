package main

import (
	"path"
	"strings"
)

const fallbackFilename = "image.jpg"

// deriveFilename returns the last path segment of rawURL with query and
// fragment dropped. The segment is taken verbatim, so escapes such as %20 and
// literal spaces are kept as they appear in the source URL. Distinct URLs
// sharing a basename map to the same name and overwrite each other at the
// destination.
func deriveFilename(rawURL string) string {
	p := urlPath(rawURL)
	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" || name == "." || name == ".." {
		return fallbackFilename
	}
	return name
}

// urlPath returns the raw path component of rawURL without decoding it.
func urlPath(rawURL string) string {
	s, _, _ := strings.Cut(rawURL, "#")
	s, _, _ = strings.Cut(s, "?")

	if _, rest, ok := strings.Cut(s, "://"); ok {
		s = "//" + rest
	}
	if authority, ok := strings.CutPrefix(s, "//"); ok {
		i := strings.Index(authority, "/")
		if i < 0 {
			return ""
		}
		return authority[i:]
	}
	return s
}

// objectKey joins filename under folder with forward slashes.
func objectKey(folder, filename string) string {
	return path.Join(folder, filename)
}

func destinationKey(folder, rawURL string) (key, filename string) {
	filename = deriveFilename(rawURL)
	return objectKey(folder, filename), filename
}

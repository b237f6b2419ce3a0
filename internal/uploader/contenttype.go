package uploader

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when the extension is missing or unknown.
const DefaultContentType = "application/javascript"

// overrides win over the platform table, which maps .js to text/javascript.
var overrides = map[string]string{
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".cjs":  "application/javascript",
	".map":  "application/json",
	".json": "application/json",
}

// ContentType infers the media type of a file from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if t, ok := overrides[ext]; ok {
		return t
	}

	t := mime.TypeByExtension(ext)
	if t == "" {
		return DefaultContentType
	}
	// Drop parameters like "; charset=utf-8"
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

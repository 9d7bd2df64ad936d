// Package download holds the naming rules for download destinations.
package download

import (
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
)

// DefaultFilename is used when no valid filename can be determined.
const DefaultFilename = "download"

// maxUniqueAttempts bounds the _(N) suffix search in MakeUniqueFilename.
const maxUniqueAttempts = 1000

// SanitizeFilename reduces name to a bare base name so a destination can
// never escape the download directory. Both / and \ count as separators.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	base := path.Base(name)
	switch base {
	case ".", "..", "/", "":
		return DefaultFilename
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, base)
}

// FilenameFor picks a destination name for a download: the explicit name
// when given, else the last path segment of the source URL. A missing
// extension is inferred from contentType.
func FilenameFor(rawURL, explicit, contentType string) string {
	name := explicit
	if strings.TrimSpace(name) == "" {
		name = lastSegment(rawURL)
	}
	name = SanitizeFilename(name)

	if path.Ext(name) == "" {
		name += ExtensionForType(contentType)
	}
	return name
}

// preferredExtensions pins MIME types whose system extension list is
// ordered alphabetically (text/html would otherwise yield .ehtml).
var preferredExtensions = map[string]string{
	"text/html":                ".html",
	"text/plain":               ".txt",
	"image/jpeg":               ".jpg",
	"image/svg+xml":            ".svg",
	"audio/mpeg":               ".mp3",
	"video/mp4":                ".mp4",
	"application/octet-stream": ".bin",
}

// ExtensionForType returns a file extension for a MIME type, or "" when
// the type is empty or unknown. Parameters such as charset are ignored.
func ExtensionForType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := preferredExtensions[mediaType]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// MakeUniqueFilename appends _(N) before the extension until exists
// reports a free name in dir.
func MakeUniqueFilename(dir, filename string, exists func(path string) bool) (string, error) {
	if !exists(path.Join(dir, filename)) {
		return filename, nil
	}

	ext := path.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; i < maxUniqueAttempts; i++ {
		candidate := fmt.Sprintf("%s_(%d)%s", stem, i, ext)
		if !exists(path.Join(dir, candidate)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %q in %s after %d attempts", filename, dir, maxUniqueAttempts)
}

func lastSegment(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(parsed.Path)
}

package download

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "report.pdf", want: "report.pdf"},
		{name: "unix traversal", input: "../../etc/passwd", want: "passwd"},
		{name: "windows traversal", input: `..\..\boot.ini`, want: "boot.ini"},
		{name: "dot", input: ".", want: DefaultFilename},
		{name: "dotdot", input: "..", want: DefaultFilename},
		{name: "empty", input: "  ", want: DefaultFilename},
		{name: "trailing slash", input: "dir/", want: "dir"},
		{name: "control chars", input: "a\x00b\nc.txt", want: "abc.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestFilenameFor(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		explicit    string
		contentType string
		want        string
	}{
		{name: "explicit wins", url: "https://x.org/a.zip", explicit: "b.zip", want: "b.zip"},
		{name: "from url path", url: "https://x.org/files/a.zip?token=1", want: "a.zip"},
		{name: "extension from type", url: "https://x.org/page", contentType: "text/html; charset=utf-8", want: "page.html"},
		{name: "root url", url: "https://x.org/", contentType: "application/octet-stream", want: "download.bin"},
		{name: "unknown type", url: "https://x.org/blob", contentType: "application/x-nope", want: "blob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilenameFor(tt.url, tt.explicit, tt.contentType))
		})
	}
}

func TestMakeUniqueFilename(t *testing.T) {
	taken := map[string]bool{
		path.Join("/dl", "a.txt"):     true,
		path.Join("/dl", "a_(1).txt"): true,
	}
	exists := func(p string) bool { return taken[p] }

	got, err := MakeUniqueFilename("/dl", "a.txt", exists)
	require.NoError(t, err)
	assert.Equal(t, "a_(2).txt", got)

	got, err = MakeUniqueFilename("/dl", "b.txt", exists)
	require.NoError(t, err)
	assert.Equal(t, "b.txt", got)

	_, err = MakeUniqueFilename("/dl", "c", func(string) bool { return true })
	assert.Error(t, err)
}

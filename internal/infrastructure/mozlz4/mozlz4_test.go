package mozlz4_test

import (
	"strings"
	"testing"

	"github.com/bnema/bezier/internal/infrastructure/mozlz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "small json", data: `{"windows":[{"tabs":[]}]}`},
		{name: "repetitive", data: strings.Repeat(`{"url":"https://example.com"},`, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := mozlz4.Encode([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, mozlz4.Magic, encoded[:8])

			decoded, err := mozlz4.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.data, string(decoded))
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := mozlz4.Decode([]byte("mozLz40"))
	require.ErrorIs(t, err, mozlz4.ErrTruncated)

	_, err = mozlz4.Decode([]byte("BADMAGIC\x00\x00\x00\x00some data here"))
	require.ErrorIs(t, err, mozlz4.ErrBadMagic)

	_, err = mozlz4.Decode([]byte("mozLz40\x00\x10\x00\x00\x00\xff\xff"))
	require.Error(t, err)
}

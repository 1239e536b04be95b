package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedURL(t *testing.T) {
	url, err := EmbedURL(" dQw4w9WgXcQ ")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", url)

	for _, bad := range []string{"", "a/b", "watch?v=x", "x y"} {
		_, err := EmbedURL(bad)
		assert.Error(t, err, bad)
	}
}

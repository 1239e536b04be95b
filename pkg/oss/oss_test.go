package oss

import (
	"context"
	"encoding/base64"
	"testing"

	"blog.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	data, ct, err := DecodeDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, raw, data)

	for name, in := range map[string]string{
		"plain url":   "https://example.com/a.png",
		"not base64":  "data:image/png,abc",
		"bad type":    "data:text/plain;base64,aGk=",
		"bad payload": "data:image/png;base64,@@@",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeDataURL(in)
			assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode)
		})
	}
}

func TestWithoutClient(t *testing.T) {
	assert.NoError(t, DeleteImage(context.Background(), "blog/avatars/x.png"))
	_, err := UploadImage(context.Background(), "blog/avatars", "data:image/png;base64,aGk=")
	assert.Equal(t, int64(errno.OSSErrCode), errno.ConvertErr(err).ErrCode)
}

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowOrigin(t *testing.T) {
	allowed := []string{"http://localhost:3000"}
	assert.True(t, AllowOrigin("http://localhost:3000", allowed))
	assert.False(t, AllowOrigin("http://evil.example", allowed))
	assert.True(t, AllowOrigin("", allowed))
	assert.True(t, AllowOrigin("http://any", nil))
	assert.True(t, AllowOrigin("http://any", []string{"*"}))
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedupText(t *testing.T) {
	now := time.UnixMilli(0x18c2f7a0b1e)
	assert.Equal(t, "nice post [ErrCode 18c2f7a0b1e]", DedupText("nice post", now))
}

package sharding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffix(t *testing.T) {
	assert.Equal(t, "_0", Suffix(8, 4))
	assert.Equal(t, "_3", Suffix(7, 4))
	assert.Equal(t, "_1", Suffix(-5, 4))
	assert.Equal(t, []string{"_0", "_1", "_2"}, Suffixes(3))
	assert.Equal(t, []string{"chat_messages_0", "chat_messages_1"}, Tables("chat_messages", 2))
}

func TestHashKey(t *testing.T) {
	t.Run("stable", func(t *testing.T) {
		assert.Equal(t, HashKey("general"), HashKey("general"))
	})
	t.Run("non negative", func(t *testing.T) {
		for _, room := range []string{"", "a", "general", "random", "日本語"} {
			assert.GreaterOrEqual(t, HashKey(room), int64(0))
		}
	})
	t.Run("suffix in range", func(t *testing.T) {
		for _, room := range []string{"a", "b", "c", "d", "e"} {
			assert.Contains(t, Suffixes(4), Suffix(HashKey(room), 4))
		}
	})
}

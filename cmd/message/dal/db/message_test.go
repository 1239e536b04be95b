package db

import (
	"testing"

	"blog.com/cmd/model"
	"github.com/stretchr/testify/assert"
)

func TestOldest(t *testing.T) {
	list := []*model.ChatMessage{{Id: 3}, {Id: 2}, {Id: 1}}
	Oldest(list)
	assert.Equal(t, int64(1), list[0].Id)
	assert.Equal(t, int64(3), list[2].Id)

	t.Run("empty", func(t *testing.T) {
		Oldest(nil)
	})
}

package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordQuery(t *testing.T) {
	src, err := querySource(KeywordQuery("golang"))
	require.NoError(t, err)
	assert.Contains(t, src, `"multi_match"`)
	assert.Contains(t, src, `"query":"golang"`)
	assert.Contains(t, src, `"title^3"`)
}

func TestDisabled(t *testing.T) {
	assert.False(t, Enabled())
	assert.NoError(t, IndexPost(context.Background(), &PostDoc{PostId: 1}))
	assert.NoError(t, DeletePost(context.Background(), 1))
	_, _, err := SearchPostIds(context.Background(), "x", 0, 4)
	assert.Error(t, err)
}

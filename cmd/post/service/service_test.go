package service

import (
	"context"
	"testing"

	"blog.com/pkg/errno"
	"blog.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParam(t *testing.T) {
	cases := []struct {
		raw  string
		kind string
		id   int64
		tag  string
	}{
		{"42 CID", "category", 42, ""},
		{"860847823953920001 UID", "user", 860847823953920001, ""},
		{"golang TID", "tag", 0, "golang"},
		{"web dev TID", "tag", 0, "web dev"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			p, err := ParseParam(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, p.Kind)
			assert.Equal(t, tc.id, p.Id)
			assert.Equal(t, tc.tag, p.Tag)
			assert.NotNil(t, p.Scope)
		})
	}

	for _, bad := range []string{"", "42", "abc CID", " TID", "x UID"} {
		_, err := ParseParam(bad)
		assert.Equal(t, int64(errno.ParamErrCode), errno.ConvertErr(err).ErrCode, bad)
	}
}

func TestParseIds(t *testing.T) {
	ids, err := ParseIds("3, 5,,8")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 8}, ids)

	_, err = ParseIds(" , ")
	assert.Error(t, err)
	_, err = ParseIds("3,x")
	assert.Error(t, err)
}

func TestSearchSyncIgnoresOtherEvents(t *testing.T) {
	err := NewSearchSync().HandleEvent(context.Background(), mq.NewEvent(mq.CommentCreated, 1, 2))
	assert.NoError(t, err)

	// 未配置 elasticsearch 时删除索引是空操作
	err = NewSearchSync().HandleEvent(context.Background(), mq.NewEvent(mq.PostDeleted, 1, 2))
	assert.NoError(t, err)
}

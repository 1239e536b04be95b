package db

import (
	"context"
	"testing"

	"blog.com/cmd/model"
	"blog.com/pkg/cascade"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// dryRun 只生成 SQL 不连接数据库，执行过的语句记录在返回的切片里。
// 关掉默认事务，否则 Delete/Update 会先去拨号开事务
func dryRun(t *testing.T) (*gorm.DB, *[]string) {
	conn, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/blog?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)

	var sqls []string
	capture := func(tx *gorm.DB) {
		sqls = append(sqls, tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...))
	}
	require.NoError(t, conn.Callback().Query().After("gorm:query").Register("test:capture", capture))
	require.NoError(t, conn.Callback().Delete().After("gorm:delete").Register("test:capture", capture))
	require.NoError(t, conn.Callback().Update().After("gorm:update").Register("test:capture", capture))
	return conn, &sqls
}

func TestCascadeRepoQueries(t *testing.T) {
	ctx := context.Background()
	conn, sqls := dryRun(t)
	repo := NewCascadeRepo(conn)

	t.Run("posts liked by user", func(t *testing.T) {
		_, err := repo.ListPostsLikedBy(ctx, 7)
		require.NoError(t, err)
		require.NotEmpty(t, *sqls)
		last := (*sqls)[len(*sqls)-1]
		assert.Contains(t, last, "FROM `posts`")
		assert.Contains(t, last, "JSON_CONTAINS(likes_voters, CAST(7 AS JSON))")
	})

	t.Run("comments snapshot", func(t *testing.T) {
		_, err := repo.ListComments(ctx)
		require.NoError(t, err)
		last := (*sqls)[len(*sqls)-1]
		assert.Contains(t, last, "FROM `comments`")
		assert.Contains(t, last, "`likes_voters`")
	})

	t.Run("post count", func(t *testing.T) {
		n, err := repo.CountPostsByAuthor(ctx, 7)
		require.NoError(t, err)
		assert.Zero(t, n)
		last := (*sqls)[len(*sqls)-1]
		assert.Contains(t, last, "count(*)")
		assert.Contains(t, last, "user_id = 7")
	})

	t.Run("delete of a missing comment", func(t *testing.T) {
		err := repo.DeleteComment(ctx, 42)
		assert.True(t, errors.Is(err, cascade.ErrNotFound))
		last := (*sqls)[len(*sqls)-1]
		assert.Contains(t, last, "DELETE FROM `comments` WHERE comment_id = 42")
	})
}

// withRow 让 Take 读到 stored；stored 为 nil 时模拟记录不存在
func withRow(t *testing.T, conn *gorm.DB, stored **model.Likes) {
	t.Helper()
	require.NoError(t, conn.Callback().Query().After("gorm:query").Register("test:row", func(tx *gorm.DB) {
		if *stored == nil {
			_ = tx.AddError(gorm.ErrRecordNotFound)
			return
		}
		switch dest := tx.Statement.Dest.(type) {
		case *model.Comment:
			dest.Likes = **stored
		case *model.Post:
			dest.Likes = **stored
		}
	}))
}

func TestRemoveVote(t *testing.T) {
	ctx := context.Background()
	conn, sqls := dryRun(t)
	var stored *model.Likes
	withRow(t, conn, &stored)

	t.Run("comment vote present", func(t *testing.T) {
		stored = &model.Likes{Count: 2, Voters: []int64{7, 9}}
		require.NoError(t, removeCommentVote(conn.WithContext(ctx), 5, 7))
		require.GreaterOrEqual(t, len(*sqls), 2)
		lock, update := (*sqls)[len(*sqls)-2], (*sqls)[len(*sqls)-1]
		assert.Contains(t, lock, "FOR UPDATE")
		assert.Contains(t, lock, "comment_id = 5")
		assert.Contains(t, update, "UPDATE `comments`")
		assert.Contains(t, update, "`likes_count`=1")
		assert.Contains(t, update, "[9]")
	})

	t.Run("post vote present", func(t *testing.T) {
		stored = &model.Likes{Count: 1, Voters: []int64{7}}
		require.NoError(t, removePostVote(conn.WithContext(ctx), 3, 7))
		update := (*sqls)[len(*sqls)-1]
		assert.Contains(t, update, "UPDATE `posts`")
		assert.Contains(t, update, "`likes_count`=0")
		assert.Contains(t, update, "[]")
	})

	t.Run("vote absent writes nothing", func(t *testing.T) {
		stored = &model.Likes{Count: 1, Voters: []int64{9}}
		before := len(*sqls)
		require.NoError(t, removeCommentVote(conn.WithContext(ctx), 5, 7))
		require.NoError(t, removePostVote(conn.WithContext(ctx), 3, 7))
		assert.Len(t, *sqls, before+2)
		for _, q := range (*sqls)[before:] {
			assert.NotContains(t, q, "UPDATE")
		}
	})

	t.Run("missing row", func(t *testing.T) {
		stored = nil
		assert.True(t, errors.Is(removeCommentVote(conn.WithContext(ctx), 5, 7), cascade.ErrNotFound))
		assert.True(t, errors.Is(removePostVote(conn.WithContext(ctx), 3, 7), cascade.ErrNotFound))
	})
}

func TestStoredLikes(t *testing.T) {
	got := storedLikes(cascade.Likes{})
	assert.NotNil(t, got.Voters)
	assert.Zero(t, got.Count)

	got = storedLikes(cascade.Likes{Count: 1, Voters: []int64{3}})
	assert.Equal(t, []int64{3}, got.Voters)
}

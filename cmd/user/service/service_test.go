package service

import (
	"context"
	"testing"

	"blog.com/cmd/model"
	"blog.com/pkg/cache"
	"blog.com/pkg/cascade"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRemovalError(t *testing.T) {
	t.Run("user with posts", func(t *testing.T) {
		err := removalError(errors.Wrapf(cascade.ErrUserHasPosts, "user %d has %d posts", 1, 2), nil)
		assert.Equal(t, errno.UserHasPostsErr, errno.ConvertErr(err))
	})

	t.Run("partial failure lists failed items", func(t *testing.T) {
		res := &cascade.Result{Outcomes: []cascade.Outcome{
			{Kind: cascade.KindDeleteComment, ID: 11},
			{Kind: cascade.KindDeleteComment, ID: 12, Err: errors.New("timeout")},
			{Kind: cascade.KindPostVote, ID: 30, Err: errors.New("deadlock")},
		}}
		e := errno.ConvertErr(removalError(res.Err(), res))
		assert.Equal(t, int64(errno.CascadeErrCode), e.ErrCode)
		assert.Contains(t, e.ErrMsg, "2 of 3 items failed")
		assert.Contains(t, e.ErrMsg, "delete_comment:12")
		assert.Contains(t, e.ErrMsg, "post_vote:30")
		assert.NotContains(t, e.ErrMsg, ":11")
	})

	t.Run("store error", func(t *testing.T) {
		e := errno.ConvertErr(removalError(errors.New("connection refused"), nil))
		assert.Equal(t, int64(errno.ServiceErrCode), e.ErrCode)
	})
}

func TestValidRoles(t *testing.T) {
	assert.True(t, validRoles([]string{constants.RoleUser, constants.RoleAdmin}))
	assert.False(t, validRoles(nil))
	assert.False(t, validRoles([]string{"Root"}))
}

func TestIdentityOf(t *testing.T) {
	u := &model.User{
		UserId:   5,
		UserName: "ann",
		Email:    "ann@example.com",
		Roles:    []string{constants.RoleAuthor},
		Avatar:   model.Image{PublicId: "p", Url: "http://img/p.png"},
	}
	id := IdentityOf(u)
	assert.Equal(t, int64(5), id.Id)
	assert.Equal(t, "http://img/p.png", id.AvatarUrl)
	assert.True(t, id.HasRole(constants.RoleAuthor))
}

func TestRefreshTags(t *testing.T) {
	calls := 0
	invalidateTags = func(context.Context) error {
		calls++
		return errors.New("redis down")
	}
	defer func() { invalidateTags = cache.InvalidateTags }()

	refreshTags(context.Background(), nil)
	refreshTags(context.Background(), &cascade.Plan{DeleteComments: []int64{1}})
	assert.Zero(t, calls)

	refreshTags(context.Background(), &cascade.Plan{PostLikes: []cascade.LikeChange{{ID: 3}}})
	assert.Equal(t, 1, calls)
}

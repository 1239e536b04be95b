package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blog.com/cmd/user/dal/db"
	"blog.com/config"
	"blog.com/pkg/cache"
	"blog.com/pkg/cascade"
	"blog.com/pkg/errno"
	"blog.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type DeleteUserService struct {
	ctx context.Context
}

func NewDeleteUserService(ctx context.Context) *DeleteUserService {
	return &DeleteUserService{ctx: ctx}
}

// DeleteUser 注销用户：删除其评论子树、撤回其点赞，全部成功后才删除用户本身。
// 有失败项时保留用户记录，重试会重新计算剩余的改动
func (s *DeleteUserService) DeleteUser(req *DeleteUserRequest) (string, error) {
	user, err := db.GetUser(s.ctx, req.Id)
	if err != nil {
		return "", err
	}

	lock := cache.NewLock(cache.UserDeleteLockKey(user.UserId), lockTTL())
	if err := lock.Lock(s.ctx); err != nil {
		if errors.Is(err, cache.ErrLocked) {
			return "", errno.DuplicateErr.WithMessage("User deletion already in progress")
		}
		return "", err
	}
	defer func() {
		if err := lock.Unlock(context.Background()); err != nil {
			hlog.CtxWarnf(s.ctx, "release %s failed: %v", cache.UserDeleteLockKey(user.UserId), err)
		}
	}()

	resolver := cascade.NewResolver(db.NewCascadeRepo(db.DB),
		cascade.WithConcurrency(config.ConfigInfo.Cascade.Concurrency))
	plan, res, err := resolver.RemoveUser(s.ctx, user.UserId)
	refreshTags(s.ctx, plan)
	if err != nil {
		return "", removalError(err, res)
	}
	hlog.CtxInfof(s.ctx, "user %d removal applied: %d comments deleted, %d comment likes and %d post likes withdrawn",
		user.UserId, len(plan.DeleteComments), len(plan.CommentLikes), len(plan.PostLikes))

	if err := dropAvatar(s.ctx, user.Avatar); err != nil {
		return "", errors.WithMessage(err, "delete avatar failed")
	}
	if err := db.DeleteUser(s.ctx, user.UserId); err != nil {
		return "", errors.WithMessage(err, "dao.DeleteUser failed")
	}

	mq.Publish(s.ctx, mq.NewEvent(mq.UserDeleted, user.UserId, user.UserId).
		With("username", user.UserName).
		With("deleted_comments", len(plan.DeleteComments)))
	return user.UserName, nil
}

// removalError 转成对外的错误码，部分失败时带上失败的条目
func removalError(err error, res *cascade.Result) error {
	switch {
	case errors.Is(err, cascade.ErrUserHasPosts):
		return errno.UserHasPostsErr
	case errors.Is(err, cascade.ErrMissingUser):
		return errno.ParamErr.WithMessage("User ID Required")
	case errors.Is(err, cascade.ErrPartialFailure) && res != nil:
		failed := res.Failed()
		items := make([]string, 0, len(failed))
		for _, o := range failed {
			items = append(items, fmt.Sprintf("%s:%d", o.Kind, o.ID))
		}
		return errors.Wrap(errno.CascadeErr.WithMessage(fmt.Sprintf("%d of %d items failed, retry to finish: %s",
			len(failed), len(res.Outcomes), strings.Join(items, " "))), err.Error())
	default:
		return errors.WithMessage(err, "resolve user removal failed")
	}
}

var invalidateTags = cache.InvalidateTags

// refreshTags 撤回过帖子点赞时清掉点赞排行缓存，部分失败也要清
func refreshTags(ctx context.Context, plan *cascade.Plan) {
	if plan == nil || len(plan.PostLikes) == 0 {
		return
	}
	if err := invalidateTags(ctx); err != nil {
		hlog.CtxWarnf(ctx, "invalidate tags cache failed: %v", err)
	}
}

func lockTTL() time.Duration {
	if d, err := time.ParseDuration(config.ConfigInfo.Cascade.LockTTL); err == nil && d > 0 {
		return d
	}
	return 30 * time.Second
}

package service

import (
	"context"

	"blog.com/cmd/post/dal/db"
	"blog.com/pkg/errno"
	"blog.com/pkg/mq"
	"blog.com/pkg/search"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// SearchSync 消费帖子事件，维护 elasticsearch 里的帖子索引
type SearchSync struct{}

var _ mq.EventHandler = (*SearchSync)(nil)

func NewSearchSync() *SearchSync {
	return &SearchSync{}
}

func (h *SearchSync) HandleEvent(ctx context.Context, event *mq.Event) error {
	switch event.Type {
	case mq.PostCreated, mq.PostUpdated:
		post, err := db.GetPost(ctx, event.TargetID)
		if err != nil {
			if errno.ConvertErr(err).ErrCode == errno.NotFoundErrCode {
				// 事件到达前帖子已被删除
				return search.DeletePost(ctx, event.TargetID)
			}
			return err
		}
		return search.IndexPost(ctx, &search.PostDoc{
			PostId:     post.PostId,
			Title:      post.Title,
			Text:       post.Text,
			Tags:       post.Tags,
			UserId:     post.UserId,
			CategoryId: post.CategoryId,
			CreatedAt:  post.CreatedAt,
		})
	case mq.PostDeleted:
		return search.DeletePost(ctx, event.TargetID)
	default:
		hlog.CtxDebugf(ctx, "search sync ignores %s", event.Type)
		return nil
	}
}

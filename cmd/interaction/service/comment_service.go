package service

import (
	"context"
	"net/url"
	"time"

	"blog.com/cmd/interaction/dal/db"
	"blog.com/cmd/model"
	postdb "blog.com/cmd/post/dal/db"
	userdb "blog.com/cmd/user/dal/db"
	"blog.com/pkg/cache"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/mq"
	"blog.com/pkg/query"
	"blog.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type CommentService struct {
	ctx context.Context
}

func NewCommentService(ctx context.Context) *CommentService {
	return &CommentService{ctx: ctx}
}

func (s *CommentService) GetComments() (*CommentList, error) {
	comments, count, err := db.ListComments(s.ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListComments failed")
	}
	infos, err := WithAuthors(s.ctx, comments)
	if err != nil {
		return nil, err
	}
	return &CommentList{Comments: infos, CommentsCount: count}, nil
}

// GetAllComments keyword 匹配正文，每页 8 条
func (s *CommentService) GetAllComments(values url.Values) (*CommentPage, error) {
	f := query.Parse(values, db.CommentColumns)
	comments, total, filtered, err := db.QueryComments(s.ctx, f, constants.CommentsPerPage)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.QueryComments failed")
	}
	infos, err := WithAuthors(s.ctx, comments)
	if err != nil {
		return nil, err
	}
	return &CommentPage{
		Comments:              infos,
		CommentsCount:         total,
		ResultPerPage:         constants.CommentsPerPage,
		FilteredCommentsCount: filtered,
	}, nil
}

// CreateComment 正文与已有评论重复时追加 [ErrCode <十六进制毫秒>] 后缀
func (s *CommentService) CreateComment(userId int64, req *CreateCommentRequest) (*model.Comment, error) {
	ok, err := cache.Allow(s.ctx, cache.CommentRateKey(userId), constants.CommentRateLimit,
		constants.CommentRateLimitWindow*time.Second)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "comment rate limit check failed: %v", err)
	}
	if !ok {
		return nil, errno.TooManyRequestsErr
	}

	if _, err := postdb.GetPost(s.ctx, req.Post); err != nil {
		return nil, err
	}
	if req.ParentComment > 0 {
		parent, err := db.GetCommentInfo(s.ctx, req.ParentComment)
		if err != nil {
			return nil, errors.WithMessage(err, "parent comment")
		}
		if parent.PostId != req.Post {
			return nil, errno.ParamErr.WithMessage("Parent comment belongs to another post")
		}
	}

	text := req.Text
	dup, err := db.TextExists(s.ctx, text)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.TextExists failed")
	}
	now := time.Now()
	if dup {
		text = DedupText(text, now)
	}
	comment := &model.Comment{
		CommentId: utils.GenerateID(),
		Text:      text,
		UserId:    userId,
		PostId:    req.Post,
		ParentId:  req.ParentComment,
		Likes:     model.Likes{Voters: []int64{}},
		CreatedAt: now.Format(constants.DataFormate),
		UpdatedAt: now.Format(constants.DataFormate),
	}
	if err = db.CreateComment(s.ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateComment failed")
	}
	mq.Publish(s.ctx, mq.NewEvent(mq.CommentCreated, userId, comment.CommentId).With("post_id", comment.PostId))
	return comment, nil
}

// DedupText 重复正文加上时间戳后缀
func DedupText(text string, now time.Time) string {
	return text + " [ErrCode " + utils.HexMillis(now) + "]"
}

func (s *CommentService) LikeComment(commentId, userId int64) (model.Likes, error) {
	likes, err := db.CreateCommentLike(s.ctx, commentId, userId)
	if err != nil {
		return model.Likes{}, errors.WithMessage(err, "dao.CreateCommentLike failed")
	}
	return likes, nil
}

func (s *CommentService) UpdateComment(req *UpdateCommentRequest) (*model.Comment, error) {
	comment, err := db.GetCommentInfo(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if req.ParentComment == req.Id {
		return nil, errno.ParamErr.WithMessage("Comment cannot reply to itself")
	}
	comment.Text = req.Text
	comment.PostId = req.Post
	comment.UserId = req.User
	comment.ParentId = req.ParentComment
	comment.UpdatedAt = utils.Now()
	if err = db.UpdateComment(s.ctx, comment); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateComment failed")
	}
	return comment, nil
}

// DeleteComment 有回复的评论不能删除
func (s *CommentService) DeleteComment(req *DeleteCommentRequest) error {
	comment, err := db.GetCommentInfo(s.ctx, req.Id)
	if err != nil {
		return err
	}
	children, err := db.GetChildCommentCount(s.ctx, comment.CommentId)
	if err != nil {
		return errors.WithMessage(err, "dao.GetChildCommentCount failed")
	}
	if children > 0 {
		return errno.RequestErr.WithMessage("Forbidden.Comment has child")
	}
	if err = db.DeleteComment(s.ctx, comment.CommentId); err != nil {
		return errors.WithMessage(err, "dao.DeleteComment failed")
	}
	mq.Publish(s.ctx, mq.NewEvent(mq.CommentDeleted, comment.UserId, comment.CommentId).With("post_id", comment.PostId))
	return nil
}

// WithAuthors 填充评论作者
func WithAuthors(ctx context.Context, comments []*model.Comment) ([]*model.CommentInfo, error) {
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserId)
	}
	briefs, err := userdb.GetBriefs(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetBriefs failed")
	}
	res := make([]*model.CommentInfo, 0, len(comments))
	for _, c := range comments {
		info := &model.CommentInfo{Comment: *c}
		if b, ok := briefs[c.UserId]; ok {
			info.Author = &b
		}
		res = append(res, info)
	}
	return res, nil
}

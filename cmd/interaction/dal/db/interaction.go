package db

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/pkg/errno"
	"blog.com/pkg/query"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentColumns 列表接口允许过滤的字段
var CommentColumns = map[string]string{
	"user":          "user_id",
	"post":          "post_id",
	"parentComment": "parent_id",
	"likes":         "likes_count",
	"createdAt":     "created_at",
}

func CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := DB.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrapf(err, "CreateComment failed, postId: %d", comment.PostId)
	}
	return nil
}

func GetCommentInfo(ctx context.Context, commentId int64) (*model.Comment, error) {
	var comment model.Comment
	if err := DB.WithContext(ctx).Where("comment_id = ?", commentId).Take(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.Wrapf(err, "GetCommentInfo failed, commentId: %d", commentId)
	}
	return &comment, nil
}

// UpdateComment 管理员修改评论内容和归属，点赞保持不变
func UpdateComment(ctx context.Context, comment *model.Comment) error {
	if err := DB.WithContext(ctx).Model(&model.Comment{CommentId: comment.CommentId}).
		Select("text", "user_id", "post_id", "parent_id", "updated_at").
		Updates(comment).Error; err != nil {
		return errors.Wrapf(err, "UpdateComment failed, commentId: %d", comment.CommentId)
	}
	return nil
}

func DeleteComment(ctx context.Context, commentId int64) error {
	if err := DB.WithContext(ctx).Where("comment_id = ?", commentId).Delete(&model.Comment{}).Error; err != nil {
		return errors.Wrapf(err, "DeleteComment failed, commentId: %d", commentId)
	}
	return nil
}

func GetChildCommentCount(ctx context.Context, commentId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).Where("parent_id = ?", commentId).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "GetChildCommentCount failed, commentId: %d", commentId)
	}
	return count, nil
}

// TextExists 不区分大小写比较评论正文
func TextExists(ctx context.Context, text string) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).Where("LOWER(text) = LOWER(?)", text).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "TextExists failed")
	}
	return count > 0, nil
}

func ListComments(ctx context.Context) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	if err := DB.WithContext(ctx).Order("created_at").Find(&comments).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListComments failed")
	}
	return comments, int64(len(comments)), nil
}

// GetPostComments 按时间顺序返回一篇帖子下的全部评论
func GetPostComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	if err := DB.WithContext(ctx).Where("post_id = ?", postId).Order("created_at").Find(&comments).Error; err != nil {
		return nil, errors.Wrapf(err, "GetPostComments failed, postId: %d", postId)
	}
	return comments, nil
}

// QueryComments 返回当前页、总数和过滤后的数量
func QueryComments(ctx context.Context, f query.Features, perPage int) ([]*model.Comment, int64, int64, error) {
	var total, filtered int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).Count(&total).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryComments count failed")
	}
	if err := DB.WithContext(ctx).Model(&model.Comment{}).Scopes(f.Scopes("text")...).Count(&filtered).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryComments filtered count failed")
	}
	if err := query.CheckPage(filtered, f.Page, perPage); err != nil {
		return nil, total, filtered, err
	}
	var comments []*model.Comment
	if err := DB.WithContext(ctx).Scopes(f.Scopes("text")...).
		Scopes(query.Paginate(f.Page, perPage)).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryComments failed")
	}
	return comments, total, filtered, nil
}

// CreateCommentLike 行锁内加入点赞者，已经点过赞返回 ForbiddenErr
func CreateCommentLike(ctx context.Context, commentId, userId int64) (model.Likes, error) {
	var likes model.Likes
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("comment_id", "likes_count", "likes_voters").
			Where("comment_id = ?", commentId).
			Take(&comment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("Comment not found")
		}
		if err != nil {
			return errors.Wrapf(err, "lock comment %d", commentId)
		}
		var added bool
		if likes, added = comment.Likes.Add(userId); !added {
			return errno.ForbiddenErr.WithMessage("Forbidden like")
		}
		return tx.Model(&model.Comment{CommentId: commentId}).
			Select("likes_count", "likes_voters").
			Updates(&model.Comment{Likes: likes}).Error
	})
	return likes, err
}

package db

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/pkg/cascade"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CascadeRepo 用户注销时 cascade.Resolver 读写 comments/posts 两张表的入口
type CascadeRepo struct {
	db *gorm.DB
}

var _ cascade.Repository = (*CascadeRepo)(nil)

func NewCascadeRepo(db *gorm.DB) *CascadeRepo {
	return &CascadeRepo{db: db}
}

func (r *CascadeRepo) CountPostsByAuthor(ctx context.Context, userId int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "count posts of user %d", userId)
	}
	return count, nil
}

func (r *CascadeRepo) ListComments(ctx context.Context) ([]cascade.Comment, error) {
	var rows []*model.Comment
	if err := r.db.WithContext(ctx).
		Select("comment_id", "user_id", "parent_id", "post_id", "likes_count", "likes_voters").
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	res := make([]cascade.Comment, 0, len(rows))
	for _, cm := range rows {
		res = append(res, cascade.Comment{
			ID:       cm.CommentId,
			AuthorID: cm.UserId,
			ParentID: cm.ParentId,
			PostID:   cm.PostId,
			Likes:    cascade.Likes(cm.Likes),
		})
	}
	return res, nil
}

func (r *CascadeRepo) ListPostsLikedBy(ctx context.Context, userId int64) ([]cascade.Post, error) {
	var rows []*model.Post
	if err := r.db.WithContext(ctx).
		Select("post_id", "user_id", "likes_count", "likes_voters").
		// 第二个参数必须是 JSON 文档，整数要先转成 JSON
		Where("JSON_CONTAINS(likes_voters, CAST(? AS JSON))", userId).
		Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list posts liked by %d", userId)
	}
	res := make([]cascade.Post, 0, len(rows))
	for _, p := range rows {
		res = append(res, cascade.Post{ID: p.PostId, AuthorID: p.UserId, Likes: cascade.Likes(p.Likes)})
	}
	return res, nil
}

func (r *CascadeRepo) DeleteComment(ctx context.Context, commentId int64) error {
	res := r.db.WithContext(ctx).Where("comment_id = ?", commentId).Delete(&model.Comment{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete comment %d", commentId)
	}
	if res.RowsAffected == 0 {
		return cascade.ErrNotFound
	}
	return nil
}

// RemoveCommentVote 行锁内重新读取投票集合再写回，并发点赞不会丢失
func (r *CascadeRepo) RemoveCommentVote(ctx context.Context, commentId, voterId int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return removeCommentVote(tx, commentId, voterId)
	})
}

func (r *CascadeRepo) RemovePostVote(ctx context.Context, postId, voterId int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return removePostVote(tx, postId, voterId)
	})
}

func removeCommentVote(tx *gorm.DB, commentId, voterId int64) error {
	var cm model.Comment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("comment_id", "likes_count", "likes_voters").
		Where("comment_id = ?", commentId).
		Take(&cm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cascade.ErrNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "lock comment %d", commentId)
	}
	likes, changed := cascade.RemoveVoter(cascade.Likes(cm.Likes), voterId)
	if !changed {
		return nil
	}
	if err := tx.Model(&model.Comment{CommentId: commentId}).
		Select("likes_count", "likes_voters").
		Updates(&model.Comment{Likes: storedLikes(likes)}).Error; err != nil {
		return errors.Wrapf(err, "update likes of comment %d", commentId)
	}
	return nil
}

func removePostVote(tx *gorm.DB, postId, voterId int64) error {
	var p model.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("post_id", "likes_count", "likes_voters").
		Where("post_id = ?", postId).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cascade.ErrNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "lock post %d", postId)
	}
	likes, changed := cascade.RemoveVoter(cascade.Likes(p.Likes), voterId)
	if !changed {
		return nil
	}
	if err := tx.Model(&model.Post{PostId: postId}).
		Select("likes_count", "likes_voters").
		Updates(&model.Post{Likes: storedLikes(likes)}).Error; err != nil {
		return errors.Wrapf(err, "update likes of post %d", postId)
	}
	return nil
}

// storedLikes 空集合存成 [] 而不是 null，JSON_CONTAINS 才能正常工作
func storedLikes(l cascade.Likes) model.Likes {
	if l.Voters == nil {
		l.Voters = []int64{}
	}
	return model.Likes(l)
}

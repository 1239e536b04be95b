package db

import (
	"context"
	"sort"
	"strings"

	"blog.com/cmd/model"
	"blog.com/pkg/errno"
	"blog.com/pkg/query"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostQuery Base 同时限定总数和结果，Filters 只影响结果
type PostQuery struct {
	Base    []Scope
	Filters []Scope
	Page    int
	PerPage int
}

func CreatePost(ctx context.Context, post *model.Post) error {
	if err := DB.WithContext(ctx).Create(post).Error; err != nil {
		return errors.Wrapf(err, "CreatePost failed, title: %s", post.Title)
	}
	return nil
}

func GetPost(ctx context.Context, postId int64) (*model.Post, error) {
	var post model.Post
	if err := DB.WithContext(ctx).Where("post_id = ?", postId).Take(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Post not found")
		}
		return nil, errors.Wrapf(err, "GetPost failed, postId: %d", postId)
	}
	return &post, nil
}

func UpdatePost(ctx context.Context, post *model.Post) error {
	if err := DB.WithContext(ctx).Model(&model.Post{PostId: post.PostId}).
		Select("title", "text", "user_id", "category_id", "tags", "image_public_id", "image_url", "updated_at").
		Updates(post).Error; err != nil {
		return errors.Wrapf(err, "UpdatePost failed, postId: %d", post.PostId)
	}
	return nil
}

// DeletePost 帖子和它的评论一起删除
func DeletePost(ctx context.Context, postId int64) (int64, error) {
	var comments int64
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ?", postId).Delete(&model.Comment{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete comments of post %d", postId)
		}
		comments = res.RowsAffected
		res = tx.Where("post_id = ?", postId).Delete(&model.Post{})
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete post %d", postId)
		}
		if res.RowsAffected == 0 {
			return errno.NotFoundErr.WithMessage("Post not found")
		}
		return nil
	})
	return comments, err
}

// IncrViews 浏览数加一后返回最新的帖子
func IncrViews(ctx context.Context, postId int64) (*model.Post, error) {
	res := DB.WithContext(ctx).Model(&model.Post{}).Where("post_id = ?", postId).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return nil, errors.Wrapf(res.Error, "IncrViews failed, postId: %d", postId)
	}
	if res.RowsAffected == 0 {
		return nil, errno.NotFoundErr.WithMessage("Post not found")
	}
	return GetPost(ctx, postId)
}

// CheckDuplicate 标题（不区分大小写）或正文与其他帖子重复时返回 DuplicateErr
func CheckDuplicate(ctx context.Context, title, text string, excludeId int64) error {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Post{}).
		Where("LOWER(title) = LOWER(?) AND post_id <> ?", title, excludeId).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check duplicate title")
	}
	if count > 0 {
		return errno.DuplicateErr.WithMessage("Duplicate title")
	}
	if err := DB.WithContext(ctx).Model(&model.Post{}).
		Where("text = ? AND post_id <> ?", text, excludeId).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check duplicate text")
	}
	if count > 0 {
		return errno.DuplicateErr.WithMessage("Duplicate text")
	}
	return nil
}

// ListPosts sort 为空时按创建时间倒序，limit<=0 不限制条数
func ListPosts(ctx context.Context, sortField, order string, limit int) ([]*model.Post, int64, error) {
	var total int64
	if err := DB.WithContext(ctx).Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListPosts count failed")
	}
	db := DB.WithContext(ctx).Order(OrderBy(sortField, order))
	if limit > 0 {
		db = db.Limit(limit)
	}
	var posts []*model.Post
	if err := db.Find(&posts).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListPosts failed")
	}
	return posts, total, nil
}

// OrderBy 只接受 PostColumns 里的字段，order 为 -1/desc 时倒序
func OrderBy(sortField, order string) clause.OrderByColumn {
	column, ok := PostColumns[sortField]
	if !ok {
		return clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	}
	desc := order == "-1" || strings.EqualFold(order, "desc")
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}
}

// QueryPosts 返回当前页、总数和过滤后的数量
func QueryPosts(ctx context.Context, q PostQuery) ([]*model.Post, int64, int64, error) {
	var total, filtered int64
	if err := DB.WithContext(ctx).Model(&model.Post{}).Scopes(q.Base...).Count(&total).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryPosts count failed")
	}
	if err := DB.WithContext(ctx).Model(&model.Post{}).Scopes(q.Base...).Scopes(q.Filters...).
		Count(&filtered).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryPosts filtered count failed")
	}
	if err := query.CheckPage(filtered, q.Page, q.PerPage); err != nil {
		return nil, total, filtered, err
	}
	var posts []*model.Post
	if err := DB.WithContext(ctx).Scopes(q.Base...).Scopes(q.Filters...).
		Scopes(query.Paginate(q.Page, q.PerPage)).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryPosts failed")
	}
	return posts, total, filtered, nil
}

// TopAuthors 发帖最多的 limit 个作者
func TopAuthors(ctx context.Context, limit int) ([]*model.AuthorRank, error) {
	var ranks []*model.AuthorRank
	if err := DB.WithContext(ctx).Model(&model.Post{}).
		Select("user_id, COUNT(*) AS posts_count").
		Group("user_id").
		Order("posts_count DESC").
		Limit(limit).
		Scan(&ranks).Error; err != nil {
		return nil, errors.Wrap(err, "TopAuthors failed")
	}
	return ranks, nil
}

// AllTags 所有帖子的标签去重后按字典序排列，空白标签跳过
func AllTags(ctx context.Context) ([]string, error) {
	var posts []*model.Post
	if err := DB.WithContext(ctx).Select("post_id", "tags").Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "AllTags failed")
	}
	return DistinctTags(posts), nil
}

func DistinctTags(posts []*model.Post) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, p := range posts {
		for _, tag := range p.Tags {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// TopLiked 点赞最多的 limit 个帖子
func TopLiked(ctx context.Context, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	if err := DB.WithContext(ctx).Order("likes_count DESC").Order("created_at DESC").
		Limit(limit).Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "TopLiked failed")
	}
	return posts, nil
}

func PostsInCategories(ctx context.Context, categoryIds []int64) ([]*model.Post, error) {
	var posts []*model.Post
	if len(categoryIds) == 0 {
		return posts, nil
	}
	if err := DB.WithContext(ctx).Where("category_id IN ?", categoryIds).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "PostsInCategories failed")
	}
	return posts, nil
}

func CountPostsInCategory(ctx context.Context, categoryId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Post{}).Where("category_id = ?", categoryId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountPostsInCategory failed")
	}
	return count, nil
}

// AddLike 行锁内加入点赞者，已经点过赞返回 ForbiddenErr
func AddLike(ctx context.Context, postId, userId int64) (model.Likes, error) {
	var likes model.Likes
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("post_id", "likes_count", "likes_voters").
			Where("post_id = ?", postId).
			Take(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("Post not found")
		}
		if err != nil {
			return errors.Wrapf(err, "lock post %d", postId)
		}
		var added bool
		if likes, added = post.Likes.Add(userId); !added {
			return errno.ForbiddenErr.WithMessage("Forbidden like")
		}
		return tx.Model(&model.Post{PostId: postId}).
			Select("likes_count", "likes_voters").
			Updates(&model.Post{Likes: likes}).Error
	})
	return likes, err
}

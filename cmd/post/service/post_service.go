package service

import (
	"context"
	"net/url"

	interactiondb "blog.com/cmd/interaction/dal/db"
	interaction "blog.com/cmd/interaction/service"
	"blog.com/cmd/model"
	"blog.com/cmd/post/dal/db"
	userdb "blog.com/cmd/user/dal/db"
	"blog.com/pkg/cache"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/mq"
	"blog.com/pkg/oss"
	"blog.com/pkg/query"
	"blog.com/pkg/search"
	"blog.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

// maxSearchHits elasticsearch 关键字命中的上限，再交给 MySQL 过滤分页
const maxSearchHits = 1000

type PostService struct {
	ctx context.Context
}

func NewPostService(ctx context.Context) *PostService {
	return &PostService{ctx: ctx}
}

func (s *PostService) GetPosts(sort, order string, limit int) (*PostList, error) {
	posts, total, err := db.ListPosts(s.ctx, sort, order, limit)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListPosts failed")
	}
	infos, err := s.fill(posts)
	if err != nil {
		return nil, err
	}
	return &PostList{Posts: infos, PostsCount: total}, nil
}

// GetAllPosts mode=home 时只排除横幅帖子，其余情况支持关键字和过滤条件
func (s *PostService) GetAllPosts(values url.Values) (*PostPage, error) {
	f := query.Parse(values, db.PostColumns)
	q := db.PostQuery{Page: f.Page, PerPage: constants.PostsPerPage}
	if values.Get("mode") == "home" {
		q.Filters = []db.Scope{db.ExcludeBanners()}
	} else {
		q.Filters = s.filters(f)
	}
	return s.page(q)
}

// GetPostsByParam 按分类、作者或标签分页，每页 6 个
func (s *PostService) GetPostsByParam(raw string, values url.Values) (*PostPage, error) {
	param, err := ParseParam(raw)
	if err != nil {
		return nil, err
	}
	f := query.Parse(values, db.PostColumns)
	return s.page(db.PostQuery{
		Base:    []db.Scope{param.Scope},
		Filters: s.filters(f),
		Page:    f.Page,
		PerPage: constants.ParamPostsPage,
	})
}

func (s *PostService) page(q db.PostQuery) (*PostPage, error) {
	posts, total, filtered, err := db.QueryPosts(s.ctx, q)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.QueryPosts failed")
	}
	infos, err := s.fill(posts)
	if err != nil {
		return nil, err
	}
	return &PostPage{
		Posts:              infos,
		PostsCount:         total,
		ResultPerPage:      q.PerPage,
		FilteredPostsCount: filtered,
	}, nil
}

func (s *PostService) filters(f query.Features) []db.Scope {
	return []db.Scope{s.keyword(f.Keyword), query.Where(f.Filters)}
}

// keyword elasticsearch 可用时按命中 id 过滤，否则对标题做 LIKE
func (s *PostService) keyword(keyword string) db.Scope {
	if keyword == "" || !search.Enabled() {
		return query.Search("title", keyword)
	}
	ids, _, err := search.SearchPostIds(s.ctx, keyword, 0, maxSearchHits)
	if err != nil {
		hlog.CtxWarnf(s.ctx, "search %q failed, falling back to mysql: %v", keyword, err)
		return query.Search("title", keyword)
	}
	return db.IdIn(ids)
}

// TopAuthors 发帖最多的三位作者
func (s *PostService) TopAuthors() ([]*model.AuthorRank, error) {
	ranks, err := db.TopAuthors(s.ctx, constants.TopAuthorsLimit)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.TopAuthors failed")
	}
	ids := make([]int64, 0, len(ranks))
	for _, r := range ranks {
		ids = append(ids, r.UserId)
	}
	briefs, err := userdb.GetBriefs(s.ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetBriefs failed")
	}
	for _, r := range ranks {
		if b, ok := briefs[r.UserId]; ok {
			r.User = &b
		}
	}
	return ranks, nil
}

// Tags 所有标签和点赞最多的三篇帖子，结果缓存在 redis
func (s *PostService) Tags() (*TagsResult, error) {
	var res TagsResult
	if hit, err := cache.GetTags(s.ctx, &res); err != nil {
		hlog.CtxWarnf(s.ctx, "read tags cache failed: %v", err)
	} else if hit {
		return &res, nil
	}

	tags, err := db.AllTags(s.ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.AllTags failed")
	}
	if len(tags) == 0 {
		return nil, errno.NotFoundErr.WithMessage("No tags received")
	}
	top, err := db.TopLiked(s.ctx, constants.TopLikedLimit)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.TopLiked failed")
	}
	ids := make([]int64, 0, len(top))
	for _, p := range top {
		ids = append(ids, p.UserId)
	}
	briefs, err := userdb.GetBriefs(s.ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetBriefs failed")
	}
	res = TagsResult{Tags: tags, Likes: make([]*model.LikedPost, 0, len(top))}
	for _, p := range top {
		res.Likes = append(res.Likes, &model.LikedPost{
			Id:         p.PostId,
			ImageUrl:   p.Image.Url,
			Title:      p.Title,
			CreatedAt:  p.CreatedAt,
			User:       briefs[p.UserId].UserName,
			CategoryId: p.CategoryId,
			MaxCount:   p.Likes.Count,
		})
	}
	if err := cache.SetTags(s.ctx, &res); err != nil {
		hlog.CtxWarnf(s.ctx, "write tags cache failed: %v", err)
	}
	return &res, nil
}

// GetCategoriesPosts 多个分类下的全部帖子
func (s *PostService) GetCategoriesPosts(raw string) ([]*model.PostInfo, error) {
	ids, err := ParseIds(raw)
	if err != nil {
		return nil, err
	}
	posts, err := db.PostsInCategories(s.ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.PostsInCategories failed")
	}
	if len(posts) == 0 {
		return nil, errno.NotFoundErr.WithMessage("No posts received")
	}
	return s.fill(posts)
}

// GetSinglePost 浏览数加一并返回帖子和它的评论；onlyComments 时只返回评论
func (s *PostService) GetSinglePost(postId int64, onlyComments bool) (*SinglePost, error) {
	var res SinglePost
	if !onlyComments {
		post, err := db.IncrViews(s.ctx, postId)
		if err != nil {
			return nil, err
		}
		infos, err := s.fill([]*model.Post{post})
		if err != nil {
			return nil, err
		}
		res.Post = infos[0]
	}
	comments, err := interactiondb.GetPostComments(s.ctx, postId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetPostComments failed")
	}
	if res.Comments, err = interaction.WithAuthors(s.ctx, comments); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *PostService) LikePost(postId, userId int64) (model.Likes, error) {
	likes, err := db.AddLike(s.ctx, postId, userId)
	if err != nil {
		return model.Likes{}, errors.WithMessage(err, "dao.AddLike failed")
	}
	s.invalidateTags()
	return likes, nil
}

func (s *PostService) CreatePost(userId int64, req *CreatePostRequest) (*model.Post, error) {
	tags := utils.CleanTags(req.Tags)
	if len(tags) == 0 {
		return nil, errno.ParamErr.WithMessage("All fields are required")
	}
	if err := db.CheckDuplicate(s.ctx, req.Title, req.Text, 0); err != nil {
		return nil, err
	}
	if _, err := db.GetCategory(s.ctx, req.Category); err != nil {
		return nil, err
	}
	if req.User > 0 {
		userId = req.User
	}
	image, err := oss.UploadImage(s.ctx, constants.PostFolder, req.ImageUrl)
	if err != nil {
		return nil, err
	}
	now := utils.Now()
	post := &model.Post{
		PostId:     utils.GenerateID(),
		Title:      req.Title,
		Text:       req.Text,
		UserId:     userId,
		CategoryId: req.Category,
		Tags:       tags,
		Likes:      model.Likes{Voters: []int64{}},
		Image:      image,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = db.CreatePost(s.ctx, post); err != nil {
		if derr := oss.DeleteImage(s.ctx, image.PublicId); derr != nil {
			hlog.CtxWarnf(s.ctx, "cleanup image %s failed: %v", image.PublicId, derr)
		}
		return nil, errors.WithMessage(err, "dao.CreatePost failed")
	}
	s.invalidateTags()
	mq.Publish(s.ctx, mq.NewEvent(mq.PostCreated, post.UserId, post.PostId))
	return post, nil
}

// UpdatePost 点赞不受编辑影响
func (s *PostService) UpdatePost(req *UpdatePostRequest) (*model.Post, error) {
	for _, tag := range req.Tags {
		if tag == "" {
			return nil, errno.DuplicateErr.WithMessage("Error tags")
		}
	}
	post, err := db.GetPost(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if err = db.CheckDuplicate(s.ctx, req.Title, req.Text, req.Id); err != nil {
		if errno.ConvertErr(err).ErrCode == errno.DuplicateErrCode {
			return nil, errno.DuplicateErr.WithMessage("Duplicate title or text")
		}
		return nil, err
	}
	if req.Category != post.CategoryId {
		if _, err := db.GetCategory(s.ctx, req.Category); err != nil {
			return nil, err
		}
	}
	if req.ImageUrl != "" {
		image, err := oss.UploadImage(s.ctx, constants.PostFolder, req.ImageUrl)
		if err != nil {
			return nil, err
		}
		if err := oss.DeleteImage(s.ctx, post.Image.PublicId); err != nil {
			hlog.CtxWarnf(s.ctx, "delete old image %s failed: %v", post.Image.PublicId, err)
		}
		post.Image = image
	}
	post.Title = req.Title
	post.Text = req.Text
	post.CategoryId = req.Category
	post.Tags = req.Tags
	if req.User > 0 {
		post.UserId = req.User
	}
	post.UpdatedAt = utils.Now()
	if err = db.UpdatePost(s.ctx, post); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdatePost failed")
	}
	s.invalidateTags()
	mq.Publish(s.ctx, mq.NewEvent(mq.PostUpdated, post.UserId, post.PostId))
	return post, nil
}

// DeletePost 连同评论和图片一起删除
func (s *PostService) DeletePost(req *DeletePostRequest) (*model.Post, error) {
	post, err := db.GetPost(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	comments, err := db.DeletePost(s.ctx, post.PostId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.DeletePost failed")
	}
	hlog.CtxInfof(s.ctx, "post %d deleted with %d comments", post.PostId, comments)
	if err := oss.DeleteImage(s.ctx, post.Image.PublicId); err != nil {
		hlog.CtxWarnf(s.ctx, "delete image %s failed: %v", post.Image.PublicId, err)
	}
	s.invalidateTags()
	mq.Publish(s.ctx, mq.NewEvent(mq.PostDeleted, post.UserId, post.PostId))
	return post, nil
}

func (s *PostService) invalidateTags() {
	if err := cache.InvalidateTags(s.ctx); err != nil {
		hlog.CtxWarnf(s.ctx, "invalidate tags cache failed: %v", err)
	}
}

// fill 填充作者和分类
func (s *PostService) fill(posts []*model.Post) ([]*model.PostInfo, error) {
	userIds := make([]int64, 0, len(posts))
	categoryIds := make([]int64, 0, len(posts))
	for _, p := range posts {
		userIds = append(userIds, p.UserId)
		categoryIds = append(categoryIds, p.CategoryId)
	}
	briefs, err := userdb.GetBriefs(s.ctx, userIds)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetBriefs failed")
	}
	categories, err := db.GetCategories(s.ctx, categoryIds)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetCategories failed")
	}
	res := make([]*model.PostInfo, 0, len(posts))
	for _, p := range posts {
		info := &model.PostInfo{Post: *p, Category: categories[p.CategoryId]}
		if b, ok := briefs[p.UserId]; ok {
			info.Author = &b
		}
		res = append(res, info)
	}
	return res, nil
}

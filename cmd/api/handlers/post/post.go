package post

import (
	"context"
	"strconv"

	"blog.com/cmd/api/handlers"
	"blog.com/cmd/post/service"
	jwt "blog.com/pkg"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// GetPosts ?sort=&order=&limit=
func GetPosts(ctx context.Context, c *app.RequestContext) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := service.NewPostService(ctx).GetPosts(c.Query("sort"), c.Query("order"), limit)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetAllPosts(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewPostService(ctx).GetAllPosts(handlers.QueryValues(c))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

// GetPostsByParam /posts/:param，param 形如 "12 CID"、"34 UID"、"golang TID"
func GetPostsByParam(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewPostService(ctx).GetPostsByParam(c.Param("param"), handlers.QueryValues(c))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetPostsByPopularUsers(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewPostService(ctx).TopAuthors()
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetTags(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewPostService(ctx).Tags()
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

// GetSinglePost ?comm=only_comm 时只返回评论，不计浏览数
func GetSinglePost(ctx context.Context, c *app.RequestContext) {
	postId, err := handlers.ParamId(c, "param")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	resp, err := service.NewPostService(ctx).GetSinglePost(postId, c.Query("comm") == "only_comm")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetCategoriesPosts(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewPostService(ctx).GetCategoriesPosts(c.Param("param"))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func LikePost(ctx context.Context, c *app.RequestContext) {
	postId, err := handlers.ParamId(c, "id")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	me, err := jwt.CurrentUser(c)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	likes, err := service.NewPostService(ctx).LikePost(postId, me.Id)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, likes)
}

func CreatePost(ctx context.Context, c *app.RequestContext) {
	var req service.CreatePostRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	me, err := jwt.CurrentUser(c)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	post, err := service.NewPostService(ctx).CreatePost(me.Id, &req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("New post created"), post)
}

func UpdatePost(ctx context.Context, c *app.RequestContext) {
	var req service.UpdatePostRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	post, err := service.NewPostService(ctx).UpdatePost(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("'"+post.Title+"' updated"), post)
}

func DeletePost(ctx context.Context, c *app.RequestContext) {
	var req service.DeletePostRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	post, err := service.NewPostService(ctx).DeletePost(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Post '"+post.Title+"' deleted"), nil)
}

package comment

import (
	"context"

	"blog.com/cmd/api/handlers"
	"blog.com/cmd/interaction/service"
	jwt "blog.com/pkg"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func GetComments(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewCommentService(ctx).GetComments()
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetAllComments(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewCommentService(ctx).GetAllComments(handlers.QueryValues(c))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func CreateComment(ctx context.Context, c *app.RequestContext) {
	var req service.CreateCommentRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	me, err := jwt.CurrentUser(c)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	comment, err := service.NewCommentService(ctx).CreateComment(me.Id, &req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("New comment created"), comment)
}

func LikeComment(ctx context.Context, c *app.RequestContext) {
	commentId, err := handlers.ParamId(c, "id")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	me, err := jwt.CurrentUser(c)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	likes, err := service.NewCommentService(ctx).LikeComment(commentId, me.Id)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, likes)
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	var req service.UpdateCommentRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	comment, err := service.NewCommentService(ctx).UpdateComment(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Comment updated"), comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	var req service.DeleteCommentRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	if err := service.NewCommentService(ctx).DeleteComment(&req); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Comment deleted"), nil)
}

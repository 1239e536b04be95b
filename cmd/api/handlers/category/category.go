package category

import (
	"context"

	"blog.com/cmd/api/handlers"
	"blog.com/cmd/post/service"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func GetCategories(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewCategoryService(ctx).GetCategories()
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetCategory(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewCategoryService(ctx).GetCategory(c.Param("title"))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func CreateCategory(ctx context.Context, c *app.RequestContext) {
	var req service.CreateCategoryRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	cat, err := service.NewCategoryService(ctx).CreateCategory(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("New category "+cat.Title+" created"), cat)
}

func UpdateCategory(ctx context.Context, c *app.RequestContext) {
	var req service.UpdateCategoryRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	cat, err := service.NewCategoryService(ctx).UpdateCategory(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage(cat.Title+" updated"), cat)
}

func DeleteCategory(ctx context.Context, c *app.RequestContext) {
	var req service.DeleteCategoryRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	cat, err := service.NewCategoryService(ctx).DeleteCategory(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Category "+cat.Title+" deleted"), nil)
}

package video

import (
	"context"

	"blog.com/cmd/api/handlers"
	"blog.com/cmd/video/service"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// GetVideos ?query= 按标题搜索
func GetVideos(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewVideoService(ctx).GetVideos(c.Query("query"))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func GetVideo(ctx context.Context, c *app.RequestContext) {
	videoId, err := handlers.ParamId(c, "param")
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	resp, err := service.NewVideoService(ctx).GetVideo(videoId)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func CreateVideo(ctx context.Context, c *app.RequestContext) {
	var req service.CreateVideoRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	v, err := service.NewVideoService(ctx).CreateVideo(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("New video created"), v)
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var req service.UpdateVideoRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	v, err := service.NewVideoService(ctx).UpdateVideo(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("'"+v.Title+"' updated"), v)
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	var req service.DeleteVideoRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	v, err := service.NewVideoService(ctx).DeleteVideo(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Video '"+v.Title+"' deleted"), nil)
}

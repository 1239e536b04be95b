package user

import (
	"context"
	"fmt"

	"blog.com/cmd/api/handlers"
	"blog.com/cmd/user/service"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func GetUsers(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewUserService(ctx).GetUsers()
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

// GetAllUsers ?keyword=&page=&field[gte]=
func GetAllUsers(ctx context.Context, c *app.RequestContext) {
	resp, err := service.NewUserService(ctx).GetAllUsers(handlers.QueryValues(c))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, resp)
}

func CreateUser(ctx context.Context, c *app.RequestContext) {
	var req service.CreateUserRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	user, err := service.NewUserService(ctx).CreateUser(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("New user "+user.UserName+" created"), user)
}

func UpdateUser(ctx context.Context, c *app.RequestContext) {
	var req service.UpdateUserRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	user, err := service.NewUserService(ctx).UpdateUser(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage(user.UserName+" updated"), user)
}

func UpdatePassword(ctx context.Context, c *app.RequestContext) {
	var req service.UpdatePasswordRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	if _, err := handlers.SelfOrAdmin(c, req.Id); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	user, err := service.NewUserService(ctx).UpdatePassword(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage(user.UserName+" updated"), nil)
}

func UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	var req service.UpdateAvatarRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	if _, err := handlers.SelfOrAdmin(c, req.Id); err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	user, err := service.NewUserService(ctx).UpdateAvatar(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage(user.UserName+" updated"), user)
}

// DeleteUser 注销账号并清理评论和点赞，部分失败时返回失败条目，可重试
func DeleteUser(ctx context.Context, c *app.RequestContext) {
	var req service.DeleteUserRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	me, err := handlers.SelfOrAdmin(c, req.Id)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	name, err := service.NewDeleteUserService(ctx).DeleteUser(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	hlog.CtxInfof(ctx, "user %d deleted by %d", req.Id, me.Id)
	handlers.SendResponse(c, errno.Success.WithMessage(fmt.Sprintf("Username %s with ID %d deleted", name, req.Id)), nil)
}

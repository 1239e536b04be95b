package auth

import (
	"context"

	"blog.com/cmd/api/handlers"
	"blog.com/cmd/user/service"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// refresh 令牌 cookie 有效期，与令牌本身一致
const refreshCookieMaxAge = 30 * 24 * 60 * 60

type registered struct {
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

func Register(ctx context.Context, c *app.RequestContext) {
	var req service.RegisterRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	tokens, user, err := service.NewAuthService(ctx).Register(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	setRefreshCookie(c, tokens.Refresh)
	hlog.CtxInfof(ctx, "user %d registered", user.UserId)
	handlers.SendResponse(c, errno.Success, registered{
		AccessToken: tokens.Access,
		Message:     user.UserName + " registered",
	})
}

func Login(ctx context.Context, c *app.RequestContext) {
	var req service.LoginRequest
	if !handlers.BindParam(ctx, c, &req) {
		return
	}
	tokens, err := service.NewAuthService(ctx).Login(&req)
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	setRefreshCookie(c, tokens.Refresh)
	handlers.SendResponse(c, errno.Success, tokens)
}

// Refresh 用 cookie 里的 refresh 令牌换新的 access 令牌
func Refresh(ctx context.Context, c *app.RequestContext) {
	access, err := service.NewAuthService(ctx).Refresh(string(c.Cookie(constants.RefreshCookieName)))
	if err != nil {
		handlers.SendError(ctx, c, err)
		return
	}
	handlers.SendResponse(c, errno.Success, service.Tokens{Access: access})
}

// Logout 只清 cookie，没有 cookie 时返回 204
func Logout(ctx context.Context, c *app.RequestContext) {
	if len(c.Cookie(constants.RefreshCookieName)) == 0 {
		c.SetStatusCode(consts.StatusNoContent)
		return
	}
	c.SetCookie(constants.RefreshCookieName, "", -1, "/", "", protocol.CookieSameSiteNoneMode, true, true)
	handlers.SendResponse(c, errno.Success.WithMessage("Cookie cleared"), nil)
}

func setRefreshCookie(c *app.RequestContext, token string) {
	c.SetCookie(constants.RefreshCookieName, token, refreshCookieMaxAge, "/", "", protocol.CookieSameSiteNoneMode, true, true)
}

package authfunc

import (
	"context"

	"blog.com/cmd/api/handlers"
	jwt "blog.com/pkg"
	"blog.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
)

// Auth access 令牌校验，通过后 jwt.CurrentUser 可用
func Auth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		jwt.AccessTokenJwtMiddleware.MiddlewareFunc(),
	)
}

// RequireRoles 当前用户至少拥有 roles 之一，否则 403
func RequireRoles(roles ...string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		user, err := jwt.CurrentUser(c)
		if err != nil {
			handlers.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		if !user.HasRole(roles...) {
			handlers.SendResponse(c, errno.ForbiddenErr, nil)
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}

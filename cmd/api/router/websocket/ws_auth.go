package websocket

import (
	"context"
	"strings"

	"blog.com/cmd/api/handlers"
	jwt "blog.com/pkg"
	"blog.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/app"
)

func _wsAuth() []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		tokenAuthFunc(),
	)
}

// tokenAuthFunc 浏览器建 websocket 时带不了 Authorization 头，允许用 ?token= 传 access 令牌
func tokenAuthFunc() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		identity, err := jwt.ParseAccessToken(bearer(c))
		if err != nil {
			handlers.SendResponse(c, err, nil)
			c.Abort()
			return
		}
		c.Set(constants.IdentityKey, identity)
		c.Next(ctx)
	}
}

func bearer(c *app.RequestContext) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	return strings.TrimSpace(strings.TrimPrefix(string(c.GetHeader("Authorization")), "Bearer"))
}

package websocket

import (
	"context"
	"testing"
	"time"

	jwt "blog.com/pkg"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuthFunc(t *testing.T) {
	var err error
	jwt.AccessTokenJwtMiddleware, err = jwt.New("ws-access", time.Minute)
	require.NoError(t, err)
	token, err := jwt.GenerateAccessToken(&jwt.Identity{Id: 42, UserName: "ann"})
	require.NoError(t, err)

	h := server.New()
	h.GET("/chat", append(_wsAuth(), func(ctx context.Context, c *app.RequestContext) {
		me, err := jwt.CurrentUser(c)
		if err != nil {
			c.String(consts.StatusInternalServerError, err.Error())
			return
		}
		c.String(consts.StatusOK, me.UserName)
	})...)

	t.Run("query token", func(t *testing.T) {
		w := ut.PerformRequest(h.Engine, consts.MethodGet, "/chat?token="+token, nil)
		assert.Equal(t, consts.StatusOK, w.Code)
		assert.Equal(t, "ann", w.Body.String())
	})
	t.Run("header token", func(t *testing.T) {
		w := ut.PerformRequest(h.Engine, consts.MethodGet, "/chat", nil, ut.Header{Key: "Authorization", Value: "Bearer " + token})
		assert.Equal(t, consts.StatusOK, w.Code)
	})
	t.Run("missing token", func(t *testing.T) {
		w := ut.PerformRequest(h.Engine, consts.MethodGet, "/chat", nil)
		assert.Equal(t, consts.StatusUnauthorized, w.Code)
	})
}

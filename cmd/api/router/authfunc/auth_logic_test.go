package authfunc

import (
	"context"
	"testing"
	"time"

	jwt "blog.com/pkg"
	"blog.com/pkg/constants"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *server.Hertz {
	t.Helper()
	var err error
	jwt.AccessTokenJwtMiddleware, err = jwt.New("access", time.Minute)
	require.NoError(t, err)
	jwt.RefreshTokenJwtMiddleware, err = jwt.New("refresh", time.Hour)
	require.NoError(t, err)

	h := server.New()
	g := h.Group("/", Auth()...)
	ok := func(ctx context.Context, c *app.RequestContext) { c.String(consts.StatusOK, "ok") }
	g.GET("/any", ok)
	g.GET("/authors", RequireRoles(constants.RoleAuthor, constants.RoleAdmin), ok)
	return h
}

func bearer(t *testing.T, roles ...string) ut.Header {
	token, err := jwt.GenerateAccessToken(&jwt.Identity{Id: 99, UserName: "u", Roles: roles})
	require.NoError(t, err)
	return ut.Header{Key: "Authorization", Value: "Bearer " + token}
}

func TestAuth(t *testing.T) {
	h := newServer(t)

	t.Run("missing token", func(t *testing.T) {
		w := ut.PerformRequest(h.Engine, consts.MethodGet, "/any", nil)
		assert.Equal(t, consts.StatusUnauthorized, w.Result().StatusCode())
	})
	t.Run("valid token", func(t *testing.T) {
		w := ut.PerformRequest(h.Engine, consts.MethodGet, "/any", nil, bearer(t, constants.RoleUser))
		assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
	})
	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, refresh, err := jwt.GenerateTokens(&jwt.Identity{Id: 1})
		require.NoError(t, err)
		w := ut.PerformRequest(h.Engine, consts.MethodGet, "/any", nil, ut.Header{Key: "Authorization", Value: "Bearer " + refresh})
		assert.Equal(t, consts.StatusUnauthorized, w.Result().StatusCode())
	})
}

func TestRequireRoles(t *testing.T) {
	h := newServer(t)

	w := ut.PerformRequest(h.Engine, consts.MethodGet, "/authors", nil, bearer(t, constants.RoleUser))
	assert.Equal(t, consts.StatusForbidden, w.Result().StatusCode())

	w = ut.PerformRequest(h.Engine, consts.MethodGet, "/authors", nil, bearer(t, constants.RoleUser, constants.RoleAuthor))
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())

	w = ut.PerformRequest(h.Engine, consts.MethodGet, "/authors", nil, bearer(t, constants.RoleAdmin))
	assert.Equal(t, consts.StatusOK, w.Result().StatusCode())
}

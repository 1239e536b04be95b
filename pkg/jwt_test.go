package jwt

import (
	"testing"
	"time"

	"blog.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, accessTTL time.Duration) {
	t.Helper()
	var err error
	AccessTokenJwtMiddleware, err = New("access-secret", accessTTL)
	require.NoError(t, err)
	RefreshTokenJwtMiddleware, err = New("refresh-secret", time.Hour)
	require.NoError(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	setup(t, time.Minute)
	in := &Identity{Id: 860847823953920001, UserName: "ann", Email: "ann@example.com", Roles: []string{"User", "Author"}, AvatarUrl: "http://img/a.png"}

	access, refresh, err := GenerateTokens(in)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	got, err := ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	assert.True(t, got.HasRole("Author"))
	assert.False(t, got.HasRole("Admin"))

	got, err = ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, in.Id, got.Id)

	t.Run("tokens are not interchangeable", func(t *testing.T) {
		_, err := ParseRefreshToken(access)
		assert.Equal(t, errno.TokenInvailedErr, err)
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := ParseAccessToken("not.a.token")
		assert.Equal(t, errno.TokenInvailedErr, err)
	})
}

func TestExpiredToken(t *testing.T) {
	setup(t, -time.Minute)
	access, err := GenerateAccessToken(&Identity{Id: 1})
	require.NoError(t, err)
	_, err = ParseAccessToken(access)
	assert.Equal(t, errno.TokenInvailedErr, err)
}

func TestIdentityFromClaims(t *testing.T) {
	assert.Nil(t, IdentityFromClaims(map[string]interface{}{"username": "x"}))
	got := IdentityFromClaims(map[string]interface{}{"id": float64(5), "roles": []interface{}{"Admin", 3}})
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.Id)
	assert.Equal(t, []string{"Admin"}, got.Roles)
}

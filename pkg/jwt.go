package jwt

import (
	"context"
	"strconv"
	"time"

	"blog.com/config"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"
)

var (
	AccessTokenJwtMiddleware  *jwt.HertzJWTMiddleware
	RefreshTokenJwtMiddleware *jwt.HertzJWTMiddleware
)

// Identity 令牌里携带的用户信息。雪花 id 超出 float64 精度，claims 里按字符串存
type Identity struct {
	Id        int64    `json:"id"`
	UserName  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	AvatarUrl string   `json:"avatarUrl"`
}

func (i *Identity) HasRole(roles ...string) bool {
	for _, have := range i.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func AccessTokenJwtInit() {
	AccessTokenJwtMiddleware = mustNew(config.ConfigInfo.Jwt.AccessSecret, parseTTL(config.ConfigInfo.Jwt.AccessTTL, 15*time.Minute))
}

func RefreshTokenJwtInit() {
	RefreshTokenJwtMiddleware = mustNew(config.ConfigInfo.Jwt.RefreshSecret, parseTTL(config.ConfigInfo.Jwt.RefreshTTL, 30*24*time.Hour))
}

// New 构造一个令牌中间件，Authorization: Bearer <token>
func New(secret string, timeout time.Duration) (*jwt.HertzJWTMiddleware, error) {
	return jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         constants.ServiceName,
		Key:           []byte(secret),
		Timeout:       timeout,
		MaxRefresh:    timeout,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if v, ok := data.(*Identity); ok {
				return jwt.MapClaims{
					constants.IdentityKey: strconv.FormatInt(v.Id, 10),
					"username":            v.UserName,
					"email":               v.Email,
					"roles":               v.Roles,
					"avatarUrl":           v.AvatarUrl,
				}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			return IdentityFromClaims(jwt.ExtractClaims(ctx, c))
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxInfof(ctx, "unauthorized request to %s: %s", c.Request.URI().Path(), message)
			Err := errno.TokenInvailedErr
			c.AbortWithStatusJSON(errno.HTTPStatus(Err.ErrCode), map[string]interface{}{
				"code":    Err.ErrCode,
				"message": message,
				"data":    nil,
			})
		},
	})
}

func mustNew(secret string, timeout time.Duration) *jwt.HertzJWTMiddleware {
	if secret == "" {
		hlog.Fatal("jwt secret is empty")
	}
	mw, err := New(secret, timeout)
	if err != nil {
		hlog.Fatal("JWT Error:" + err.Error())
	}
	return mw
}

func parseTTL(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}

// IdentityFromClaims 从 claims 还原 Identity，缺少用户 id 时返回 nil
func IdentityFromClaims(claims jwt.MapClaims) *Identity {
	id := utils.Transfer(claims[constants.IdentityKey])
	if id <= 0 {
		return nil
	}
	identity := &Identity{Id: id}
	identity.UserName, _ = claims["username"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.AvatarUrl, _ = claims["avatarUrl"].(string)
	if roles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range roles {
			if s, ok := r.(string); ok {
				identity.Roles = append(identity.Roles, s)
			}
		}
	}
	return identity
}

// GenerateTokens 登录/注册成功后签发 access 和 refresh 令牌
func GenerateTokens(identity *Identity) (access, refresh string, err error) {
	if access, _, err = AccessTokenJwtMiddleware.TokenGenerator(identity); err != nil {
		return "", "", errors.Wrap(err, "generate access token")
	}
	if refresh, _, err = RefreshTokenJwtMiddleware.TokenGenerator(identity); err != nil {
		return "", "", errors.Wrap(err, "generate refresh token")
	}
	return access, refresh, nil
}

// GenerateAccessToken 只签发 access 令牌，refresh 接口使用
func GenerateAccessToken(identity *Identity) (string, error) {
	token, _, err := AccessTokenJwtMiddleware.TokenGenerator(identity)
	return token, errors.Wrap(err, "generate access token")
}

// ParseRefreshToken 校验 refresh 令牌（签名与过期时间）
func ParseRefreshToken(token string) (*Identity, error) {
	return parse(RefreshTokenJwtMiddleware, token)
}

func ParseAccessToken(token string) (*Identity, error) {
	return parse(AccessTokenJwtMiddleware, token)
}

func parse(mw *jwt.HertzJWTMiddleware, token string) (*Identity, error) {
	t, err := mw.ParseTokenString(token)
	if err != nil || !t.Valid {
		return nil, errno.TokenInvailedErr
	}
	identity := IdentityFromClaims(jwt.ExtractClaimsFromToken(t))
	if identity == nil {
		return nil, errno.TokenInvailedErr
	}
	return identity, nil
}

// CurrentUser 取出 access 令牌中间件写入的身份
func CurrentUser(c *app.RequestContext) (*Identity, error) {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return nil, errno.AuthorizationFailedErr
	}
	identity, ok := v.(*Identity)
	if !ok || identity == nil {
		return nil, errno.AuthorizationFailedErr
	}
	return identity, nil
}

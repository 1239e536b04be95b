package service

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/cmd/user/dal/db"
	jwt "blog.com/pkg"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/oss"
	"blog.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type AuthService struct {
	ctx context.Context
}

func NewAuthService(ctx context.Context) *AuthService {
	return &AuthService{ctx: ctx}
}

// Register 普通用户注册，角色固定为 User，成功后直接签发令牌
func (s *AuthService) Register(req *RegisterRequest) (*Tokens, *model.User, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, nil, errno.ParamErr.WithMessage("Invalid email")
	}
	if err := db.CheckDuplicate(s.ctx, req.UserName, req.Email, 0); err != nil {
		return nil, nil, err
	}
	avatar, err := uploadAvatar(s.ctx, req.Avatar)
	if err != nil {
		return nil, nil, err
	}
	hash, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "Password fail to crypt")
	}
	now := utils.Now()
	user := &model.User{
		UserId:    utils.GenerateID(),
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  hash,
		Roles:     []string{constants.RoleUser},
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = db.CreateUser(s.ctx, user); err != nil {
		return nil, nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(s.ctx, "user %s registered", user.UserName)

	tokens, err := issue(user)
	return tokens, user, err
}

// Login 邮箱加密码登录
func (s *AuthService) Login(req *LoginRequest) (*Tokens, error) {
	user, err := db.GetUserByEmail(s.ctx, req.Email)
	if err != nil {
		if errno.ConvertErr(err).ErrCode == errno.NotFoundErrCode {
			return nil, errno.AuthorizationFailedErr
		}
		return nil, err
	}
	if err, ok := utils.VerifyPassword(req.Password, user.Password); !ok {
		hlog.CtxInfof(s.ctx, "login of %s rejected: %v", req.Email, err)
		return nil, errno.AuthorizationFailedErr
	}
	return issue(user)
}

// Refresh 用 refresh 令牌换新的 access 令牌，用户已被删除时拒绝
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", errno.AuthorizationFailedErr
	}
	identity, err := jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", errno.ForbiddenErr.WithMessage("Forbidden")
	}
	user, err := db.GetUserByNameAndEmail(s.ctx, identity.UserName, identity.Email)
	if err != nil {
		if errno.ConvertErr(err).ErrCode == errno.NotFoundErrCode {
			return "", errno.AuthorizationFailedErr
		}
		return "", err
	}
	return jwt.GenerateAccessToken(IdentityOf(user))
}

func issue(user *model.User) (*Tokens, error) {
	access, refresh, err := jwt.GenerateTokens(IdentityOf(user))
	if err != nil {
		return nil, err
	}
	return &Tokens{Access: access, Refresh: refresh}, nil
}

// uploadAvatar 没有上传头像时使用默认头像
func uploadAvatar(ctx context.Context, dataURL string) (model.Image, error) {
	if dataURL == "" {
		return model.Image{PublicId: constants.DefaultAvatarPublicId, Url: constants.DefaultAvatarUrl}, nil
	}
	return oss.UploadImage(ctx, constants.AvatarFolder, dataURL)
}

// dropAvatar 删除旧头像，默认头像不删
func dropAvatar(ctx context.Context, avatar model.Image) error {
	if avatar.PublicId == "" || avatar.PublicId == constants.DefaultAvatarPublicId {
		return nil
	}
	return oss.DeleteImage(ctx, avatar.PublicId)
}

package service

import (
	"context"
	"net/url"

	"blog.com/cmd/model"
	"blog.com/cmd/user/dal/db"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/query"
	"blog.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type UserService struct {
	ctx context.Context
}

func NewUserService(ctx context.Context) *UserService {
	return &UserService{ctx: ctx}
}

func (s *UserService) GetUsers() (*UserList, error) {
	users, count, err := db.ListUsers(s.ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListUsers failed")
	}
	return &UserList{Users: users, UsersCount: count}, nil
}

// GetAllUsers keyword 匹配用户名，支持 field[gt|gte|lt|lte] 过滤，每页 4 个
func (s *UserService) GetAllUsers(values url.Values) (*UserPage, error) {
	f := query.Parse(values, db.UserColumns)
	users, total, filtered, err := db.QueryUsers(s.ctx, f, constants.UsersPerPage)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.QueryUsers failed")
	}
	return &UserPage{
		Users:             users,
		UsersCount:        total,
		ResultPerPage:     constants.UsersPerPage,
		FilteredUserCount: filtered,
	}, nil
}

// CreateUser 管理端创建用户，可以指定角色
func (s *UserService) CreateUser(req *CreateUserRequest) (*model.User, error) {
	if !validRoles(req.Roles) {
		return nil, errno.ParamErr.WithMessage("Invalid roles")
	}
	if err := db.CheckDuplicate(s.ctx, req.UserName, req.Email, 0); err != nil {
		return nil, err
	}
	avatar, err := uploadAvatar(s.ctx, req.Avatar)
	if err != nil {
		return nil, err
	}
	hash, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	now := utils.Now()
	user := &model.User{
		UserId:    utils.GenerateID(),
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  hash,
		Roles:     req.Roles,
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = db.CreateUser(s.ctx, user); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	return user, nil
}

func (s *UserService) UpdateUser(req *UpdateUserRequest) (*model.User, error) {
	if !validRoles(req.Roles) {
		return nil, errno.ParamErr.WithMessage("Invalid roles")
	}
	user, err := db.GetUser(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if err = db.CheckDuplicate(s.ctx, req.UserName, req.Email, req.Id); err != nil {
		return nil, err
	}
	if req.Avatar != "" {
		avatar, err := s.replaceAvatar(user.Avatar, req.Avatar)
		if err != nil {
			return nil, err
		}
		user.Avatar = avatar
	}
	if req.Password != "" {
		if user.Password, err = utils.Crypt(req.Password); err != nil {
			return nil, errors.WithMessage(err, "Password fail to crypt")
		}
	}
	user.UserName = req.UserName
	user.Email = req.Email
	user.Roles = req.Roles
	user.UpdatedAt = utils.Now()
	if err = db.UpdateUser(s.ctx, user); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateUser failed")
	}
	return user, nil
}

func (s *UserService) UpdatePassword(req *UpdatePasswordRequest) (*model.User, error) {
	user, err := db.GetUser(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	hash, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	if err = db.UpdatePassword(s.ctx, user.UserId, hash, utils.Now()); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdatePassword failed")
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(req *UpdateAvatarRequest) (*model.User, error) {
	user, err := db.GetUser(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	avatar, err := s.replaceAvatar(user.Avatar, req.Avatar)
	if err != nil {
		return nil, err
	}
	if err = db.UpdateAvatar(s.ctx, user.UserId, avatar, utils.Now()); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateAvatar failed")
	}
	user.Avatar = avatar
	return user, nil
}

// replaceAvatar 先上传新头像再删旧的，删除失败只记日志
func (s *UserService) replaceAvatar(old model.Image, dataURL string) (model.Image, error) {
	avatar, err := uploadAvatar(s.ctx, dataURL)
	if err != nil {
		return model.Image{}, err
	}
	if err := dropAvatar(s.ctx, old); err != nil {
		hlog.CtxWarnf(s.ctx, "delete old avatar %s failed: %v", old.PublicId, err)
	}
	return avatar, nil
}

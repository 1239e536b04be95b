package service

import (
	"blog.com/cmd/model"
	jwt "blog.com/pkg"
	"blog.com/pkg/constants"
)

type RegisterRequest struct {
	UserName string `json:"username" vd:"len($)>0"`
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
}

type CreateUserRequest struct {
	UserName string   `json:"username" vd:"len($)>0"`
	Email    string   `json:"email" vd:"len($)>0"`
	Password string   `json:"password" vd:"len($)>0"`
	Roles    []string `json:"roles" vd:"len($)>0"`
	Avatar   string   `json:"avatar"`
}

// UpdateUserRequest Password 为空时不修改密码，Avatar 为空时保留原头像
type UpdateUserRequest struct {
	Id       int64    `json:"id" vd:"$>0"`
	UserName string   `json:"username" vd:"len($)>0"`
	Email    string   `json:"email" vd:"len($)>0"`
	Roles    []string `json:"roles" vd:"len($)>0"`
	Password string   `json:"password"`
	Avatar   string   `json:"avatar"`
}

type UpdatePasswordRequest struct {
	Id       int64  `json:"id" vd:"$>0"`
	Password string `json:"password" vd:"len($)>0"`
}

type UpdateAvatarRequest struct {
	Id     int64  `json:"id" vd:"$>0"`
	Avatar string `json:"avatar" vd:"len($)>0"`
}

type DeleteUserRequest struct {
	Id int64 `json:"id" vd:"$>0"`
}

type UserList struct {
	Users      []*model.User `json:"users"`
	UsersCount int64         `json:"usersCount"`
}

type UserPage struct {
	Users             []*model.User `json:"users"`
	UsersCount        int64         `json:"usersCount"`
	ResultPerPage     int           `json:"resultPerPage"`
	FilteredUserCount int64         `json:"filteredUsersCount"`
}

// Tokens 登录结果，Refresh 只写进 cookie
type Tokens struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"-"`
}

// IdentityOf 令牌里携带的用户信息
func IdentityOf(u *model.User) *jwt.Identity {
	return &jwt.Identity{
		Id:        u.UserId,
		UserName:  u.UserName,
		Email:     u.Email,
		Roles:     u.Roles,
		AvatarUrl: u.Avatar.Url,
	}
}

func validRoles(roles []string) bool {
	for _, r := range roles {
		switch r {
		case constants.RoleUser, constants.RoleAuthor, constants.RoleAdmin:
		default:
			return false
		}
	}
	return len(roles) > 0
}

package db

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/pkg/errno"
	"blog.com/pkg/query"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserColumns 列表接口允许过滤的字段
var UserColumns = map[string]string{
	"username":  "user_name",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func CreateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrapf(err, "CreateUser failed, username: %s", user.UserName)
	}
	return nil
}

func GetUser(ctx context.Context, userId int64) (*model.User, error) {
	return first(DB.WithContext(ctx).Where("user_id = ?", userId))
}

func GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return first(DB.WithContext(ctx).Where("email = ?", email))
}

// GetUserByNameAndEmail refresh 时用令牌里的用户名和邮箱找回用户
func GetUserByNameAndEmail(ctx context.Context, username, email string) (*model.User, error) {
	return first(DB.WithContext(ctx).Where("user_name = ? AND email = ?", username, email))
}

func first(db *gorm.DB) (*model.User, error) {
	var user model.User
	if err := db.Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User not found")
		}
		return nil, errors.Wrap(err, "query user failed")
	}
	return &user, nil
}

// CheckDuplicate 用户名（不区分大小写）或邮箱被 excludeId 以外的用户占用时返回 DuplicateErr
func CheckDuplicate(ctx context.Context, username, email string, excludeId int64) error {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(user_name) = LOWER(?) AND user_id <> ?", username, excludeId).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check duplicate username")
	}
	if count > 0 {
		return errno.DuplicateErr.WithMessage("Duplicate username")
	}
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND user_id <> ?", email, excludeId).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check duplicate email")
	}
	if count > 0 {
		return errno.DuplicateErr.WithMessage("Duplicate email")
	}
	return nil
}

func UpdateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Model(&model.User{UserId: user.UserId}).
		Select("user_name", "email", "roles", "password", "avatar_public_id", "avatar_url", "updated_at").
		Updates(user).Error; err != nil {
		return errors.Wrapf(err, "UpdateUser failed, userId: %d", user.UserId)
	}
	return nil
}

func UpdatePassword(ctx context.Context, userId int64, password, updatedAt string) error {
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Updates(map[string]interface{}{
		"password":   password,
		"updated_at": updatedAt,
	}).Error; err != nil {
		return errors.Wrapf(err, "UpdatePassword failed, userId: %d", userId)
	}
	return nil
}

func UpdateAvatar(ctx context.Context, userId int64, avatar model.Image, updatedAt string) error {
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Updates(map[string]interface{}{
		"avatar_public_id": avatar.PublicId,
		"avatar_url":       avatar.Url,
		"updated_at":       updatedAt,
	}).Error; err != nil {
		return errors.Wrapf(err, "UpdateAvatar failed, userId: %d", userId)
	}
	return nil
}

func DeleteUser(ctx context.Context, userId int64) error {
	if err := DB.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.User{}).Error; err != nil {
		return errors.Wrapf(err, "Delete user failed, userId: %d", userId)
	}
	return nil
}

func ListUsers(ctx context.Context) ([]*model.User, int64, error) {
	var users []*model.User
	if err := DB.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListUsers failed")
	}
	return users, int64(len(users)), nil
}

// QueryUsers 按关键字和过滤条件分页查询，返回当前页、总数和过滤后的数量
func QueryUsers(ctx context.Context, f query.Features, perPage int) ([]*model.User, int64, int64, error) {
	var total, filtered int64
	if err := DB.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryUsers count failed")
	}
	if err := DB.WithContext(ctx).Model(&model.User{}).Scopes(f.Scopes("user_name")...).Count(&filtered).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryUsers filtered count failed")
	}
	if err := query.CheckPage(filtered, f.Page, perPage); err != nil {
		return nil, total, filtered, err
	}

	var users []*model.User
	if err := DB.WithContext(ctx).Scopes(f.Scopes("user_name")...).
		Scopes(query.Paginate(f.Page, perPage)).
		Order("created_at").
		Find(&users).Error; err != nil {
		return nil, 0, 0, errors.Wrap(err, "QueryUsers failed")
	}
	return users, total, filtered, nil
}

// GetBriefs 批量取作者信息，其他服务填充 author 字段时使用
func GetBriefs(ctx context.Context, userIds []int64) (map[int64]model.UserBrief, error) {
	res := make(map[int64]model.UserBrief, len(userIds))
	if len(userIds) == 0 {
		return res, nil
	}
	var users []*model.User
	if err := DB.WithContext(ctx).Select("user_id", "user_name", "avatar_public_id", "avatar_url").
		Where("user_id IN ?", userIds).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "GetBriefs failed")
	}
	for _, u := range users {
		res[u.UserId] = u.Brief()
	}
	return res, nil
}

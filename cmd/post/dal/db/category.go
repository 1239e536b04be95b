package db

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/pkg/errno"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func CreateCategory(ctx context.Context, category *model.Category) error {
	if err := DB.WithContext(ctx).Create(category).Error; err != nil {
		return errors.Wrapf(err, "CreateCategory failed, title: %s", category.Title)
	}
	return nil
}

func GetCategory(ctx context.Context, categoryId int64) (*model.Category, error) {
	return takeCategory(DB.WithContext(ctx).Where("category_id = ?", categoryId))
}

func GetCategoryByTitle(ctx context.Context, title string) (*model.Category, error) {
	return takeCategory(DB.WithContext(ctx).Where("title = ?", title))
}

func takeCategory(db *gorm.DB) (*model.Category, error) {
	var category model.Category
	if err := db.Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Category not found")
		}
		return nil, errors.Wrap(err, "query category failed")
	}
	return &category, nil
}

func ListCategories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	if err := DB.WithContext(ctx).Order("title").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "ListCategories failed")
	}
	return categories, nil
}

// GetCategories 批量查询，帖子列表填充分类时使用
func GetCategories(ctx context.Context, categoryIds []int64) (map[int64]*model.Category, error) {
	res := make(map[int64]*model.Category, len(categoryIds))
	if len(categoryIds) == 0 {
		return res, nil
	}
	var categories []*model.Category
	if err := DB.WithContext(ctx).Where("category_id IN ?", categoryIds).Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "GetCategories failed")
	}
	for _, c := range categories {
		res[c.CategoryId] = c
	}
	return res, nil
}

func UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := DB.WithContext(ctx).Model(&model.Category{CategoryId: category.CategoryId}).
		Select("title", "parent_id", "updated_at").
		Updates(category).Error; err != nil {
		return errors.Wrapf(err, "UpdateCategory failed, categoryId: %d", category.CategoryId)
	}
	return nil
}

func DeleteCategory(ctx context.Context, categoryId int64) error {
	if err := DB.WithContext(ctx).Where("category_id = ?", categoryId).Delete(&model.Category{}).Error; err != nil {
		return errors.Wrapf(err, "DeleteCategory failed, categoryId: %d", categoryId)
	}
	return nil
}

// CheckDuplicateTitle 不区分大小写
func CheckDuplicateTitle(ctx context.Context, title string, excludeId int64) error {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Category{}).
		Where("LOWER(title) = LOWER(?) AND category_id <> ?", title, excludeId).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "check duplicate category")
	}
	if count > 0 {
		return errno.DuplicateErr.WithMessage("Duplicate category")
	}
	return nil
}

func CountChildren(ctx context.Context, categoryId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Category{}).Where("parent_id = ?", categoryId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountChildren failed")
	}
	return count, nil
}

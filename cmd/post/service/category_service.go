package service

import (
	"context"

	"blog.com/cmd/model"
	"blog.com/cmd/post/dal/db"
	"blog.com/pkg/errno"
	"blog.com/pkg/utils"
	"github.com/pkg/errors"
)

type CategoryService struct {
	ctx context.Context
}

func NewCategoryService(ctx context.Context) *CategoryService {
	return &CategoryService{ctx: ctx}
}

func (s *CategoryService) GetCategories() (*CategoryList, error) {
	categories, err := db.ListCategories(s.ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListCategories failed")
	}
	if len(categories) == 0 {
		return nil, errno.NotFoundErr.WithMessage("No categories found")
	}
	return &CategoryList{Categories: categories, Count: int64(len(categories))}, nil
}

func (s *CategoryService) GetCategory(title string) (*model.CategoryInfo, error) {
	category, err := db.GetCategoryByTitle(s.ctx, title)
	if err != nil {
		return nil, err
	}
	info := &model.CategoryInfo{Category: *category}
	if category.ParentId > 0 {
		if info.Parent, err = db.GetCategory(s.ctx, category.ParentId); err != nil &&
			errno.ConvertErr(err).ErrCode != errno.NotFoundErrCode {
			return nil, err
		}
	}
	return info, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*model.Category, error) {
	if err := db.CheckDuplicateTitle(s.ctx, req.Title, 0); err != nil {
		return nil, err
	}
	if err := s.checkParent(0, req.ParentCategory); err != nil {
		return nil, err
	}
	now := utils.Now()
	category := &model.Category{
		CategoryId: utils.GenerateID(),
		Title:      req.Title,
		ParentId:   req.ParentCategory,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.CreateCategory(s.ctx, category); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateCategory failed")
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(req *UpdateCategoryRequest) (*model.Category, error) {
	category, err := db.GetCategory(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if err = db.CheckDuplicateTitle(s.ctx, req.Title, req.Id); err != nil {
		return nil, err
	}
	if err = s.checkParent(req.Id, req.ParentCategory); err != nil {
		return nil, err
	}
	category.Title = req.Title
	category.ParentId = req.ParentCategory
	category.UpdatedAt = utils.Now()
	if err = db.UpdateCategory(s.ctx, category); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateCategory failed")
	}
	return category, nil
}

// DeleteCategory 有子分类或已有帖子的分类不能删除
func (s *CategoryService) DeleteCategory(req *DeleteCategoryRequest) (*model.Category, error) {
	category, err := db.GetCategory(s.ctx, req.Id)
	if err != nil {
		return nil, err
	}
	children, err := db.CountChildren(s.ctx, category.CategoryId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.CountChildren failed")
	}
	if children > 0 {
		return nil, errno.RequestErr.WithMessage("Category has child category")
	}
	posts, err := db.CountPostsInCategory(s.ctx, category.CategoryId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.CountPostsInCategory failed")
	}
	if posts > 0 {
		return nil, errno.RequestErr.WithMessage("Category has assigned post")
	}
	if err = db.DeleteCategory(s.ctx, category.CategoryId); err != nil {
		return nil, errors.WithMessage(err, "dao.DeleteCategory failed")
	}
	return category, nil
}

// checkParent 上级分类必须存在且不能是自己
func (s *CategoryService) checkParent(id, parentId int64) error {
	if parentId <= 0 {
		return nil
	}
	if parentId == id {
		return errno.ParamErr.WithMessage("Category cannot be its own parent")
	}
	_, err := db.GetCategory(s.ctx, parentId)
	return err
}

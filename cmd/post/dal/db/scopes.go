package db

import (
	"blog.com/pkg/constants"
	"gorm.io/gorm"
)

type Scope = func(*gorm.DB) *gorm.DB

// PostColumns 列表接口允许过滤和排序的字段
var PostColumns = map[string]string{
	"title":     "title",
	"views":     "views",
	"user":      "user_id",
	"category":  "category_id",
	"likes":     "likes_count",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func ByCategory(categoryId int64) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("category_id = ?", categoryId) }
}

func ByAuthor(userId int64) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", userId) }
}

// ByTag tags 数组里包含 tag
func ByTag(tag string) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", tag) }
}

// ExcludeBanners 首页列表去掉只挂了横幅标签的帖子
func ExcludeBanners() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tags <> CAST(? AS JSON) AND tags <> CAST(? AS JSON)",
			`["`+constants.HomeBannerTag+`"]`, `["`+constants.HomeBigPostTag+`"]`)
	}
}

// IdIn 关键字走 elasticsearch 时，用命中的 id 代替 LIKE
func IdIn(ids []int64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("post_id IN ?", ids)
	}
}

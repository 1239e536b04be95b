package db

import (
	"blog.com/cmd/model"
	"blog.com/pkg/database"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init init DB
func Init() {
	DB = database.MustOpen()
	if err := DB.AutoMigrate(&model.Comment{}); err != nil {
		hlog.Errorf("Failed to migrate comments table: %v", err)
		panic(err)
	}
}

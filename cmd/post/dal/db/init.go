package db

import (
	"blog.com/cmd/model"
	"blog.com/pkg/database"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init init DB
func Init() {
	DB = database.MustOpen()
	if err := DB.AutoMigrate(&model.Post{}, &model.Category{}); err != nil {
		panic(err)
	}
	logrus.Info("post tables ready")
}

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
	if err := DB.AutoMigrate(&model.Video{}); err != nil {
		panic(err)
	}
	logrus.Info("video tables ready")
}

package db

import (
	"blog.com/cmd/model"
	"blog.com/config"
	"blog.com/pkg/database"
	"blog.com/pkg/sharding"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	DB     *gorm.DB
	shards uint
)

// Init 聊天记录单独一个连接，分表插件只注册在这个连接上
func Init() {
	conn, err := database.OpenDedicated()
	if err != nil {
		panic(err)
	}
	shards = config.ConfigInfo.Chat.Shards
	if shards == 0 {
		shards = 4
	}
	table := model.ChatMessage{}.TableName()
	for _, name := range sharding.Tables(table, shards) {
		if err = conn.Table(name).AutoMigrate(&model.ChatMessage{}); err != nil {
			panic(err)
		}
	}
	if err = conn.Use(sharding.NewSharding("room_key", shards, table)); err != nil {
		panic(err)
	}
	DB = conn
	logrus.Infof("chat tables ready, %d shards", shards)
}

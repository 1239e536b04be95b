package cache

import (
	"context"
	"time"

	"blog.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var (
	RDB *redis.Client
	rs  *redsync.Redsync
)

// Init 连接 redis 并建立 redsync 实例
func Init() {
	RDB = redis.NewClient(&redis.Options{
		Addr:         config.ConfigInfo.Redis.Addr,
		Password:     config.ConfigInfo.Redis.Password,
		DB:           config.ConfigInfo.Redis.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	rs = redsync.New(goredis.NewPool(RDB))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := RDB.Ping(ctx).Err(); err != nil {
		hlog.Warnf("redis ping failed: %v", err)
		return
	}
	hlog.Info("Connect Redis Success")
}

// Use 用已有 client 初始化，测试和嵌入场景使用
func Use(client *redis.Client) {
	RDB = client
	rs = redsync.New(goredis.NewPool(client))
}

package database

import (
	"context"
	"sync"
	"time"

	"blog.com/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

var (
	db      *gorm.DB
	openErr error
	once    sync.Once
)

// Open 返回进程内共享的连接，各个 dal 的 Init 都从这里拿
func Open() (*gorm.DB, error) {
	once.Do(func() {
		db, openErr = open(config.MysqlDSN())
	})
	return db, openErr
}

func open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Warn),
			NowFunc: func() time.Time {
				return time.Now().Local()
			},
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err = conn.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "use opentracing plugin")
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(64)
	sqlDB.SetMaxIdleConns(16)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logrus.Infof("Mysql connected: %s", config.ConfigInfo.Mysql.Addr)
	return conn, nil
}

// OpenDedicated 单独开一个连接池，给需要注册分表插件的 dal 用，避免影响共享连接
func OpenDedicated() (*gorm.DB, error) {
	return open(config.MysqlDSN())
}

// MustOpen 同 Open，失败直接 panic，和各服务启动时的处理方式一致
func MustOpen() *gorm.DB {
	conn, err := Open()
	if err != nil {
		panic(err)
	}
	return conn
}

// HealthCheck ping 一次数据库
func HealthCheck(ctx context.Context) error {
	if db == nil {
		return errors.New("database not initialised")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

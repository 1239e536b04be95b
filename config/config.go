package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// Init 读取 config.yml，环境变量 BLOG_* 可覆盖同名配置项
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("blog")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Elasticsearch.Addr == "" {
		logrus.Warn("No elasticsearch address configured, post search falls back to MySQL")
	}
}

func setDefaults() {
	viper.SetDefault("server.http_addr", "0.0.0.0:8888")
	viper.SetDefault("server.ws_addr", ":10000")
	viper.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	viper.SetDefault("mysql.addr", "127.0.0.1:3306")
	viper.SetDefault("mysql.database", "blog")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("rabbitmq.addr", "localhost:5672")
	viper.SetDefault("rabbitmq.username", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.bucket", "blog")
	viper.SetDefault("jwt.access_ttl", "15m")
	viper.SetDefault("jwt.refresh_ttl", "720h")
	viper.SetDefault("cascade.concurrency", 8)
	viper.SetDefault("cascade.lock_ttl", "30s")
	viper.SetDefault("chat.shards", 4)
	viper.SetDefault("chat.history", 20)
}

// 手动从viper获取配置值，避免Unmarshal对嵌套key的大小写问题
func load() {
	ConfigInfo.Server.HttpAddr = viper.GetString("server.http_addr")
	ConfigInfo.Server.WsAddr = viper.GetString("server.ws_addr")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.Bucket = viper.GetString("minio.bucket")
	ConfigInfo.Minio.PublicHost = viper.GetString("minio.public_host")

	ConfigInfo.Elasticsearch.Addr = viper.GetString("elasticsearch.addr")
	ConfigInfo.Jaeger.AgentAddr = viper.GetString("jaeger.agent_addr")

	ConfigInfo.Jwt.AccessSecret = viper.GetString("jwt.access_secret")
	ConfigInfo.Jwt.RefreshSecret = viper.GetString("jwt.refresh_secret")
	ConfigInfo.Jwt.AccessTTL = viper.GetString("jwt.access_ttl")
	ConfigInfo.Jwt.RefreshTTL = viper.GetString("jwt.refresh_ttl")

	ConfigInfo.Cascade.Concurrency = viper.GetInt("cascade.concurrency")
	ConfigInfo.Cascade.LockTTL = viper.GetString("cascade.lock_ttl")

	ConfigInfo.Chat.Shards = viper.GetUint("chat.shards")
	ConfigInfo.Chat.History = viper.GetInt("chat.history")
}

// MysqlDSN 拼接gorm mysql驱动使用的dsn
func MysqlDSN() string {
	charset := ConfigInfo.Mysql.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return ConfigInfo.Mysql.Username + ":" + ConfigInfo.Mysql.Password + "@tcp(" + ConfigInfo.Mysql.Addr + ")/" + ConfigInfo.Mysql.Database + "?charset=" + charset + "&parseTime=True&loc=Local"
}

// RabbitMqURL amqp连接串
func RabbitMqURL() string {
	return "amqp://" + ConfigInfo.RabbitMq.Username + ":" + ConfigInfo.RabbitMq.Password + "@" + ConfigInfo.RabbitMq.Addr + "/"
}

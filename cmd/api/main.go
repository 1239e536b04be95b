package main

import (
	"context"
	"fmt"

	"blog.com/cmd/api/handlers/chat"
	webs "blog.com/cmd/api/router/websocket"
	interactiondb "blog.com/cmd/interaction/dal/db"
	messagedb "blog.com/cmd/message/dal/db"
	message "blog.com/cmd/message/service"
	postdb "blog.com/cmd/post/dal/db"
	post "blog.com/cmd/post/service"
	userdb "blog.com/cmd/user/dal/db"
	videodb "blog.com/cmd/video/dal/db"
	"blog.com/config"
	"blog.com/config/jaeger"
	jwt "blog.com/pkg"
	"blog.com/pkg/cache"
	"blog.com/pkg/constants"
	"blog.com/pkg/errno"
	"blog.com/pkg/middleware"
	"blog.com/pkg/mq"
	"blog.com/pkg/oss"
	"blog.com/pkg/search"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"
)

func Init() {
	userdb.Init()
	postdb.Init()
	interactiondb.Init()
	videodb.Init()
	messagedb.Init()
	cache.Init()
	if err := oss.InitMinio(); err != nil {
		hlog.Warnf("minio unavailable, image uploads will fail: %v", err)
	}
	search.Init(config.ConfigInfo.Elasticsearch.Addr)
	if err := middleware.InitSentinel(middleware.DefaultRules()); err != nil {
		panic(err)
	}
	jwt.AccessTokenJwtInit()
	jwt.RefreshTokenJwtInit()
	chat.Init(message.NewHub(message.MessageStore(), config.ConfigInfo.Chat.History))
}

// startSearchSync 帖子事件同步到 elasticsearch，两者任一不可用时跳过
func startSearchSync(ctx context.Context) {
	if !search.Enabled() {
		return
	}
	consumer, err := mq.NewConsumer(config.RabbitMqURL())
	if err != nil {
		hlog.Warnf("search sync disabled: %v", err)
		return
	}
	if err = consumer.Consume(ctx, mq.SearchSyncQueue, post.NewSearchSync()); err != nil {
		hlog.Warnf("search sync disabled: %v", err)
		consumer.Close()
	}
}

func main() {
	config.Init()
	// tracer 要在打开数据库之前注册，gorm 插件从全局 tracer 取 span
	closer := jaeger.InitTracer(constants.ServiceName)
	defer closer.Close()
	Init()

	if producer := mq.Init(config.RabbitMqURL()); producer != nil {
		defer producer.Close()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startSearchSync(ctx)

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.HttpAddr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(16*1024*1024),
	)

	// 配置 CORS，refresh 令牌放在 cookie 里，需要带凭证
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"code":    errno.ServiceErrCode,
				"message": fmt.Sprintf("[Recovery] err=%v", err),
			})
		})))
	r.Use(middleware.Tracing())

	register(r)

	// 聊天室单独一个 websocket 服务
	ws := server.Default(
		server.WithHostPorts(config.ConfigInfo.Server.WsAddr),
	)
	ws.NoHijackConnPool = true
	webs.WebsocketRegister(ws)

	go ws.Spin()
	r.Spin()
}

package chat

import (
	"context"
	"encoding/json"

	"blog.com/cmd/message/service"
	"blog.com/config"
	jwt "blog.com/pkg"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
)

var (
	upgrader = websocket.HertzUpgrader{
		CheckOrigin: func(ctx *app.RequestContext) bool {
			return AllowOrigin(string(ctx.GetHeader("Origin")), config.ConfigInfo.Server.AllowOrigins)
		},
	}
	hub *service.Hub
)

// Init 注册聊天室使用的 hub
func Init(h *service.Hub) {
	hub = h
}

type wsSink struct {
	conn *websocket.Conn
}

func (s wsSink) Send(f service.Frame) error {
	return s.conn.WriteJSON(f)
}

// Handler 升级为 websocket，逐帧交给 hub 处理。join 帧不带 name 时用令牌里的用户名
func Handler(ctx context.Context, c *app.RequestContext) {
	me, _ := jwt.CurrentUser(c)
	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		session := service.NewSession(wsSink{conn: conn})
		defer hub.Disconnect(session)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				hlog.CtxDebugf(ctx, "chat connection closed: %v", err)
				return
			}
			var in service.Inbound
			if err := json.Unmarshal(raw, &in); err != nil {
				session.Error("Error unmarshalling message")
				continue
			}
			if in.Event == service.EventJoin && in.Name == "" && me != nil {
				in.Name = me.UserName
			}
			hub.Handle(ctx, session, in)
		}
	})
	if err != nil {
		hlog.CtxInfof(ctx, "websocket upgrade failed: %v", err)
		c.JSON(consts.StatusBadRequest, map[string]string{"message": "websocket upgrade failed"})
	}
}

// AllowOrigin 没配置白名单或者配置了 * 时放行，非浏览器客户端不带 Origin 也放行
func AllowOrigin(origin string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

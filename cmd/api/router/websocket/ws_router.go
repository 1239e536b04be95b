package websocket

import (
	handler_ws_chat "blog.com/cmd/api/handlers/chat"
	"github.com/cloudwego/hertz/pkg/app/server"
)

// WebsocketRegister 聊天室路由
func WebsocketRegister(h *server.Hertz) {
	h.GET(`/chat`, append(_wsAuth(), handler_ws_chat.Handler)...)
}

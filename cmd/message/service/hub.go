package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"blog.com/cmd/message/dal/db"
	"blog.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	EventJoin        = "join"
	EventSendMessage = "sendMessage"
	EventLeftRoom    = "leftRoom"
	EventMessage     = "message"
	EventRoom        = "room"
	EventError       = "error"

	adminName = "Admin"
)

// Inbound 客户端发来的帧
type Inbound struct {
	Event   string `json:"event"`
	Name    string `json:"name"`
	Room    string `json:"room"`
	Message string `json:"message"`
}

// Frame 服务端推送的帧
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type ChatUser struct {
	Name string `json:"name"`
	Room string `json:"room,omitempty"`
}

type MessageData struct {
	User      ChatUser `json:"user"`
	Message   string   `json:"message"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

type RoomData struct {
	Users []ChatUser `json:"users"`
}

// Sink 一个连接的写端，websocket 连接或者测试替身
type Sink interface {
	Send(f Frame) error
}

// Store 消息持久化
type Store interface {
	SaveMessage(ctx context.Context, room, user, content string) (*model.ChatMessage, error)
	History(ctx context.Context, room string, n int) ([]*model.ChatMessage, error)
}

type dbStore struct{}

func (dbStore) SaveMessage(ctx context.Context, room, user, content string) (*model.ChatMessage, error) {
	return db.SaveMessage(ctx, room, user, content)
}

func (dbStore) History(ctx context.Context, room string, n int) ([]*model.ChatMessage, error) {
	return db.History(ctx, room, n)
}

// MessageStore 基于分表 chat_messages 的存储
func MessageStore() Store {
	return dbStore{}
}

// Session 一个连接在聊天室里的状态
type Session struct {
	sink Sink
	wmu  sync.Mutex
	name string
	room string
}

func NewSession(sink Sink) *Session {
	return &Session{sink: sink}
}

func (s *Session) emit(f Frame) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := s.sink.Send(f); err != nil {
		hlog.Debugf("chat send to %s failed: %v", s.name, err)
	}
}

// Error 给当前连接回一个错误帧
func (s *Session) Error(text string) {
	s.emit(Frame{Event: EventError, Data: text})
}

type Hub struct {
	mu      sync.Mutex
	names   map[string][]string              // room -> 房间内用户名，按加入顺序
	members map[string]map[*Session]struct{} // room -> 在线连接
	store   Store
	history int
}

func NewHub(store Store, history int) *Hub {
	return &Hub{
		names:   make(map[string][]string),
		members: make(map[string]map[*Session]struct{}),
		store:   store,
		history: history,
	}
}

// Handle 按事件分发
func (h *Hub) Handle(ctx context.Context, s *Session, in Inbound) {
	switch in.Event {
	case EventJoin:
		h.Join(ctx, s, in.Name, in.Room)
	case EventSendMessage:
		h.Send(ctx, s, in.Message)
	case EventLeftRoom:
		h.Leave(s)
	default:
		s.Error("unknown event " + in.Event)
	}
}

func (h *Hub) Join(ctx context.Context, s *Session, name, room string) {
	name, room = strings.TrimSpace(name), strings.TrimSpace(room)
	if name == "" || room == "" {
		s.Error("name and room are required")
		return
	}
	if s.room != "" {
		h.Leave(s)
	}

	h.mu.Lock()
	exists := h.hasName(room, name)
	if !exists {
		h.names[room] = append(h.names[room], name)
	}
	others := h.sessions(room)
	if h.members[room] == nil {
		h.members[room] = make(map[*Session]struct{})
	}
	h.members[room][s] = struct{}{}
	s.name, s.room = name, room
	users := h.users(room)
	everyone := h.sessions(room)
	h.mu.Unlock()

	greeting := name + " is here!"
	if exists {
		greeting = name + ", you are here again"
	}
	s.emit(adminFrame(greeting))
	h.replay(ctx, s, room)
	for _, o := range others {
		o.emit(adminFrame(name + " has joined"))
	}
	broadcast(everyone, Frame{Event: EventRoom, Data: RoomData{Users: users}})
}

func (h *Hub) replay(ctx context.Context, s *Session, room string) {
	if h.store == nil || h.history <= 0 {
		return
	}
	list, err := h.store.History(ctx, room, h.history)
	if err != nil {
		hlog.CtxErrorf(ctx, "load chat history of %s failed: %v", room, err)
		return
	}
	for _, m := range list {
		s.emit(Frame{Event: EventMessage, Data: MessageData{
			User:      ChatUser{Name: m.UserName, Room: m.Room},
			Message:   m.Content,
			CreatedAt: m.CreatedAt,
		}})
	}
}

// Send 未加入房间的连接发消息直接忽略
func (h *Hub) Send(ctx context.Context, s *Session, text string) {
	h.mu.Lock()
	name, room := s.name, s.room
	everyone := h.sessions(room)
	h.mu.Unlock()
	if room == "" || text == "" {
		return
	}

	data := MessageData{User: ChatUser{Name: name, Room: room}, Message: text}
	if h.store != nil {
		if msg, err := h.store.SaveMessage(ctx, room, name, text); err != nil {
			hlog.CtxErrorf(ctx, "save chat message failed: %v", err)
		} else {
			data.CreatedAt = msg.CreatedAt
		}
	}
	broadcast(everyone, Frame{Event: EventMessage, Data: data})
}

// Leave 用户离开房间，名字从房间列表里移除
func (h *Hub) Leave(s *Session) {
	h.mu.Lock()
	name, room := s.name, s.room
	if room == "" {
		h.mu.Unlock()
		return
	}
	h.removeName(room, name)
	h.detach(s)
	users := h.users(room)
	rest := h.sessions(room)
	h.mu.Unlock()

	s.emit(adminFrame(fmt.Sprintf("%s left %s", name, room)))
	broadcast(rest, adminFrame(fmt.Sprintf("%s left %s", name, room)))
	broadcast(rest, Frame{Event: EventRoom, Data: RoomData{Users: users}})
}

// Disconnect 连接断开只摘掉连接，名字留在房间里，重连时提示 "you are here again"
func (h *Hub) Disconnect(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s.room != "" {
		h.detach(s)
	}
}

// Users 当前房间的用户列表
func (h *Hub) Users(room string) []ChatUser {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.users(room)
}

func (h *Hub) detach(s *Session) {
	if set := h.members[s.room]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(h.members, s.room)
		}
	}
	s.name, s.room = "", ""
}

func (h *Hub) hasName(room, name string) bool {
	for _, n := range h.names[room] {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func (h *Hub) removeName(room, name string) {
	names := h.names[room]
	for i, n := range names {
		if strings.EqualFold(n, name) {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}
	if len(names) == 0 {
		delete(h.names, room)
		return
	}
	h.names[room] = names
}

func (h *Hub) users(room string) []ChatUser {
	out := make([]ChatUser, 0, len(h.names[room]))
	for _, n := range h.names[room] {
		out = append(out, ChatUser{Name: n, Room: room})
	}
	return out
}

func (h *Hub) sessions(room string) []*Session {
	out := make([]*Session, 0, len(h.members[room]))
	for s := range h.members[room] {
		out = append(out, s)
	}
	return out
}

func broadcast(to []*Session, f Frame) {
	for _, s := range to {
		s.emit(f)
	}
}

func adminFrame(text string) Frame {
	return Frame{Event: EventMessage, Data: MessageData{User: ChatUser{Name: adminName}, Message: text}}
}

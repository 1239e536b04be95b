package mq

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventExchange = "blog_events"

	// SearchSyncQueue 接收帖子事件，用于同步 elasticsearch 索引
	SearchSyncQueue = "blog_search_sync"
	SearchSyncBind  = "post.*"
)

const (
	UserDeleted    = "user.deleted"
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
	CommentDeleted = "comment.deleted"
)

// Event 领域事件，Type 即 routing key
type Event struct {
	EventID   string                 `json:"event_id"`
	Type      string                 `json:"type"`
	UserID    int64                  `json:"user_id"`
	TargetID  int64                  `json:"target_id"`
	Timestamp int64                  `json:"timestamp"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

func NewEvent(typ string, userID, targetID int64) *Event {
	return &Event{
		EventID:   uuid.NewString(),
		Type:      typ,
		UserID:    userID,
		TargetID:  targetID,
		Timestamp: time.Now().Unix(),
	}
}

func (e *Event) With(key string, value interface{}) *Event {
	if e.Extra == nil {
		e.Extra = make(map[string]interface{})
	}
	e.Extra[key] = value
	return e
}

package mq

import "context"

// EventPublisher 消息生产者接口
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
}

// EventHandler 消费者回调，返回错误时消息重新入队
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// 确保Producer实现EventPublisher接口
var _ EventPublisher = (*Producer)(nil)

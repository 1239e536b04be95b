package mq

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var publisher EventPublisher

// Init 连接 RabbitMQ。连不上时只记录日志，之后的 Publish 都是空操作
func Init(rabbitmqURL string) *Producer {
	p, err := NewProducer(rabbitmqURL)
	if err != nil {
		hlog.Warnf("rabbitmq unavailable, domain events disabled: %v", err)
		return nil
	}
	publisher = p
	return p
}

// SetPublisher 替换全局生产者，测试里用来注入
func SetPublisher(p EventPublisher) {
	publisher = p
}

// Publish 发布事件，失败只记日志，不影响调用方
func Publish(ctx context.Context, event *Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		hlog.CtxErrorf(ctx, "publish %s failed: %v", event.Type, err)
	}
}

package mq

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

const consumerPrefetch = 10

type Consumer struct {
	*session
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	s, err := openSession(rabbitmqURL, consumerPrefetch)
	if err != nil {
		return nil, err
	}
	return &Consumer{session: s}, nil
}

// Consume 在后台消费 queue，直到 ctx 结束或连接关闭
func (c *Consumer) Consume(ctx context.Context, queue string, handler EventHandler) error {
	deliveries, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrapf(err, "consume %s", queue)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Infof("%s consumer stopped: %v", queue, ctx.Err())
				return
			case d, ok := <-deliveries:
				if !ok {
					hlog.Warnf("%s deliveries closed", queue)
					return
				}
				dispatch(ctx, d, handler)
			}
		}
	}()
	return nil
}

// Acknowledger 抽出 Delivery 的确认方法，测试里替换
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func dispatch(ctx context.Context, d amqp091.Delivery, handler EventHandler) {
	handle(ctx, d.Body, d.Redelivered, d, handler)
}

// handle 解析失败直接丢弃；处理失败第一次重新入队，重投后仍失败则丢弃
func handle(ctx context.Context, body []byte, redelivered bool, ack Acknowledger, handler EventHandler) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		hlog.CtxErrorf(ctx, "drop malformed event: %v", err)
		_ = ack.Nack(false, false)
		return
	}
	if err := handler.HandleEvent(ctx, &event); err != nil {
		hlog.CtxErrorf(ctx, "handle %s event %s failed: %v", event.Type, event.EventID, err)
		_ = ack.Nack(false, !redelivered)
		return
	}
	_ = ack.Ack(false)
}

package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	*session
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	s, err := openSession(rabbitmqURL, 0)
	if err != nil {
		return nil, err
	}
	return &Producer{session: s}, nil
}

// Publish 事件类型即 routing key，消息持久化
func (p *Producer) Publish(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrapf(err, "marshal %s event", event.Type)
	}
	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Unix(event.Timestamp, 0),
		Body:         body,
	}
	if err = p.channel.PublishWithContext(ctx, EventExchange, event.Type, false, false, msg); err != nil {
		return errors.Wrapf(err, "publish %s event", event.Type)
	}
	hlog.CtxDebugf(ctx, "event %s published, user=%d target=%d", event.Type, event.UserID, event.TargetID)
	return nil
}

package mq

import (
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

// session 一条连接加一个 channel，生产者和消费者各持有一个
type session struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// openSession 建连并声明拓扑，prefetch > 0 时限制未确认消息数
func openSession(rabbitmqURL string, prefetch int) (*session, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}
	s := &session{conn: conn}
	if s.channel, err = conn.Channel(); err != nil {
		s.Close()
		return nil, errors.Wrap(err, "open channel")
	}
	if prefetch > 0 {
		if err = s.channel.Qos(prefetch, 0, false); err != nil {
			s.Close()
			return nil, errors.Wrap(err, "set qos")
		}
	}
	if err = declare(s.channel); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// declare blog_events 是 topic 交换机，搜索同步队列订阅 post.*
func declare(ch *amqp091.Channel) error {
	if err := ch.ExchangeDeclare(EventExchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare exchange %s", EventExchange)
	}
	if _, err := ch.QueueDeclare(SearchSyncQueue, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare queue %s", SearchSyncQueue)
	}
	if err := ch.QueueBind(SearchSyncQueue, SearchSyncBind, EventExchange, false, nil); err != nil {
		return errors.Wrapf(err, "bind %s to %s", SearchSyncQueue, SearchSyncBind)
	}
	return nil
}

func (s *session) Close() error {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

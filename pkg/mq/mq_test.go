package mq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []*Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e *Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestPublish(t *testing.T) {
	defer SetPublisher(nil)

	t.Run("no publisher is a no-op", func(t *testing.T) {
		SetPublisher(nil)
		Publish(context.Background(), NewEvent(UserDeleted, 1, 1))
	})

	t.Run("events reach the publisher", func(t *testing.T) {
		r := &recorder{}
		SetPublisher(r)
		Publish(context.Background(), NewEvent(PostCreated, 7, 99).With("title", "hello"))
		assert.Len(t, r.events, 1)
		e := r.events[0]
		assert.Equal(t, PostCreated, e.Type)
		assert.Equal(t, int64(99), e.TargetID)
		assert.Equal(t, "hello", e.Extra["title"])
		assert.NotEmpty(t, e.EventID)
	})

	t.Run("publish errors are swallowed", func(t *testing.T) {
		SetPublisher(&recorder{err: errors.New("down")})
		Publish(context.Background(), NewEvent(CommentCreated, 1, 2))
	})
}

type acks struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *acks) Ack(bool) error { a.acked = true; return nil }

func (a *acks) Nack(_, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type handlerFunc func(ctx context.Context, e *Event) error

func (f handlerFunc) HandleEvent(ctx context.Context, e *Event) error { return f(ctx, e) }

func TestHandle(t *testing.T) {
	ok := handlerFunc(func(context.Context, *Event) error { return nil })
	fail := handlerFunc(func(context.Context, *Event) error { return errors.New("es down") })
	body := []byte(`{"event_id":"e1","type":"post.created","target_id":5}`)

	t.Run("ack", func(t *testing.T) {
		a := &acks{}
		handle(context.Background(), body, false, a, ok)
		assert.True(t, a.acked)
	})
	t.Run("malformed is dropped", func(t *testing.T) {
		a := &acks{}
		handle(context.Background(), []byte("{"), false, a, ok)
		assert.True(t, a.nacked)
		assert.False(t, a.requeue)
	})
	t.Run("first failure requeues", func(t *testing.T) {
		a := &acks{}
		handle(context.Background(), body, false, a, fail)
		assert.True(t, a.requeue)
	})
	t.Run("redelivered failure is dropped", func(t *testing.T) {
		a := &acks{}
		handle(context.Background(), body, true, a, fail)
		assert.True(t, a.nacked)
		assert.False(t, a.requeue)
	})
}

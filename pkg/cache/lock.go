package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
)

var ErrLocked = errors.New("resource is locked by another request")

// Locker 分布式锁，redis 不可用时退化为进程内锁
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// NewLock 以 key 为名的互斥锁，ttl 到期自动释放
func NewLock(key string, ttl time.Duration) Locker {
	if rs == nil {
		return &localLock{key: key}
	}
	return &redLock{m: rs.NewMutex(key,
		redsync.WithExpiry(ttl),
		redsync.WithTries(8),
		redsync.WithRetryDelay(50*time.Millisecond),
	)}
}

type redLock struct {
	m *redsync.Mutex
}

func (l *redLock) Lock(ctx context.Context) error {
	if err := l.m.LockContext(ctx); err != nil {
		if errors.Is(err, redsync.ErrFailed) {
			return errors.Wrap(ErrLocked, l.m.Name())
		}
		return errors.Wrapf(err, "lock %s", l.m.Name())
	}
	return nil
}

func (l *redLock) Unlock(ctx context.Context) error {
	if _, err := l.m.UnlockContext(ctx); err != nil {
		return errors.Wrapf(err, "unlock %s", l.m.Name())
	}
	return nil
}

var (
	localMu   sync.Mutex
	localHeld = make(map[string]struct{})
)

type localLock struct {
	key string
}

func (l *localLock) Lock(context.Context) error {
	localMu.Lock()
	defer localMu.Unlock()
	if _, held := localHeld[l.key]; held {
		return errors.Wrap(ErrLocked, l.key)
	}
	localHeld[l.key] = struct{}{}
	return nil
}

func (l *localLock) Unlock(context.Context) error {
	localMu.Lock()
	defer localMu.Unlock()
	delete(localHeld, l.key)
	return nil
}

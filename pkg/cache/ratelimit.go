package cache

import (
	"context"
	"time"
)

// Allow 固定窗口计数，窗口内第 limit+1 次起返回 false。redis 不可用时放行
func Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	if RDB == nil {
		return true, nil
	}
	n, err := RDB.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		if err := RDB.Expire(ctx, key, window).Err(); err != nil {
			return true, err
		}
	}
	return n <= limit, nil
}

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const tagsExpire = 10 * time.Minute

// GetTags 读取缓存的标签页数据，未命中时 ok 为 false
func GetTags(ctx context.Context, v interface{}) (bool, error) {
	if RDB == nil {
		return false, nil
	}
	data, err := RDB.Get(ctx, TagsKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func SetTags(ctx context.Context, v interface{}) error {
	if RDB == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return RDB.Set(ctx, TagsKey, data, tagsExpire).Err()
}

// InvalidateTags 帖子增删改或点赞后调用
func InvalidateTags(ctx context.Context) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, TagsKey).Err()
}

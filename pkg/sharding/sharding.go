package sharding

import (
	"fmt"
	"hash/fnv"

	"blog.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/sharding"
)

// NewSharding 按整数分片键取模分表，表名后缀为 _0 .. _{n-1}
func NewSharding(shardingKey string, shardingNumber uint, tableName string) *sharding.Sharding {
	return sharding.Register(sharding.Config{
		ShardingKey:    shardingKey,
		NumberOfShards: shardingNumber,
		ShardingAlgorithm: func(value any) (string, error) {
			key, err := toInt64(value)
			if err != nil {
				return "", err
			}
			return Suffix(key, shardingNumber), nil
		},
		ShardingSuffixs: func() []string {
			return Suffixes(shardingNumber)
		},
		PrimaryKeyGenerator: sharding.PKCustom,
		PrimaryKeyGeneratorFn: func(int64) int64 {
			return utils.GenerateID()
		},
	}, tableName)
}

// Suffix 分片键落在哪张表
func Suffix(key int64, shards uint) string {
	if key < 0 {
		key = -key
	}
	return fmt.Sprintf("_%d", key%int64(shards))
}

func Suffixes(shards uint) []string {
	out := make([]string, 0, shards)
	for i := uint(0); i < shards; i++ {
		out = append(out, fmt.Sprintf("_%d", i))
	}
	return out
}

// Tables 所有分表的表名，用于建表
func Tables(tableName string, shards uint) []string {
	out := make([]string, 0, shards)
	for _, s := range Suffixes(shards) {
		out = append(out, tableName+s)
	}
	return out
}

// HashKey 把字符串（比如聊天室名）映射成非负的分片键
func HashKey(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64() >> 1)
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint64:
		return int64(v >> 1), nil
	case int32:
		return int64(v), nil
	default:
		return 0, errors.Errorf("unsupported sharding key type %T", value)
	}
}

package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

var (
	idNode   *snowflake.Node
	nodeErr  error
	nodeOnce sync.Once
)

// InitSnowflake 设置本进程的节点号（0-1023），只有第一次调用生效
func InitSnowflake(node int64) error {
	nodeOnce.Do(func() {
		idNode, nodeErr = snowflake.NewNode(node)
		nodeErr = errors.Wrapf(nodeErr, "init snowflake node %d", node)
	})
	return nodeErr
}

// GenerateID 全局唯一 id，用户、帖子、评论、分类、视频、聊天消息共用。未初始化时用节点 1
func GenerateID() int64 {
	if idNode == nil {
		if err := InitSnowflake(1); err != nil {
			panic(err)
		}
	}
	return idNode.Generate().Int64()
}

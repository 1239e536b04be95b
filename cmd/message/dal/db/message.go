package db

import (
	"context"
	"time"

	"blog.com/cmd/model"
	"blog.com/pkg/sharding"
	"blog.com/pkg/utils"
	"github.com/pkg/errors"
)

func SaveMessage(ctx context.Context, room, user, content string) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{
		Id:        utils.GenerateID(),
		RoomKey:   sharding.HashKey(room),
		Room:      room,
		UserName:  user,
		Content:   content,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, errors.Wrapf(err, "SaveMessage failed, room=%s", room)
	}
	return msg, nil
}

// History 房间最近 n 条消息，按时间正序返回
func History(ctx context.Context, room string, n int) ([]*model.ChatMessage, error) {
	if n <= 0 {
		return nil, nil
	}
	var list []*model.ChatMessage
	// 分表插件要求查询条件里带分片键
	err := DB.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("room_key = ? AND room = ?", sharding.HashKey(room), room).
		Order("created_at desc").Limit(n).
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrapf(err, "History failed, room=%s", room)
	}
	Oldest(list)
	return list, nil
}

// Oldest 把倒序查出来的消息原地翻转成正序
func Oldest(list []*model.ChatMessage) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}

package model

// ChatMessage 聊天室消息，按 RoomKey 分表存储
type ChatMessage struct {
	Id        int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	RoomKey   int64  `gorm:"column:room_key;index" json:"-"`
	Room      string `gorm:"column:room;size:128" json:"room"`
	UserName  string `gorm:"column:user_name;size:64" json:"user"`
	Content   string `gorm:"column:content;type:text" json:"message"`
	CreatedAt int64  `gorm:"column:created_at" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

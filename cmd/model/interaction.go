package model

// Likes 点赞集合，Count 始终等于 len(Voters)
type Likes struct {
	Count  int64   `gorm:"column:count" json:"count"`
	Voters []int64 `gorm:"column:voters;type:json;serializer:json" json:"usersArray"`
}

func (l Likes) Has(userId int64) bool {
	for _, v := range l.Voters {
		if v == userId {
			return true
		}
	}
	return false
}

// Add 返回加入 userId 后的集合，已存在时 ok 为 false
func (l Likes) Add(userId int64) (Likes, bool) {
	if l.Has(userId) {
		return l, false
	}
	voters := make([]int64, 0, len(l.Voters)+1)
	voters = append(voters, userId)
	voters = append(voters, l.Voters...)
	return Likes{Count: int64(len(voters)), Voters: voters}, true
}

type Comment struct {
	CommentId int64  `gorm:"column:comment_id;primaryKey;autoIncrement:false" json:"_id"`
	Text      string `gorm:"column:text;type:text" json:"text"`
	UserId    int64  `gorm:"column:user_id;index" json:"user"`
	PostId    int64  `gorm:"column:post_id;index" json:"post"`
	ParentId  int64  `gorm:"column:parent_id;index" json:"parentComment"`
	Likes     Likes  `gorm:"embedded;embeddedPrefix:likes_" json:"likes"`
	CreatedAt string `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt string `gorm:"column:updated_at" json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentInfo 带作者信息的评论
type CommentInfo struct {
	Comment
	Author *UserBrief `json:"author,omitempty"`
}

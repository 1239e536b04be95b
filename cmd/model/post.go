package model

type Post struct {
	PostId     int64    `gorm:"column:post_id;primaryKey;autoIncrement:false" json:"_id"`
	Title      string   `gorm:"column:title;uniqueIndex;size:255" json:"title"`
	Text       string   `gorm:"column:text;type:text" json:"text"`
	UserId     int64    `gorm:"column:user_id;index" json:"user"`
	CategoryId int64    `gorm:"column:category_id;index" json:"category"`
	Tags       []string `gorm:"column:tags;type:json;serializer:json" json:"tags"`
	Views      int64    `gorm:"column:views" json:"views"`
	Likes      Likes    `gorm:"embedded;embeddedPrefix:likes_" json:"likes"`
	Image      Image    `gorm:"embedded;embeddedPrefix:image_" json:"imageUrl"`
	CreatedAt  string   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  string   `gorm:"column:updated_at" json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

// PostInfo 带作者和分类的帖子
type PostInfo struct {
	Post
	Author   *UserBrief `json:"author,omitempty"`
	Category *Category  `json:"categoryInfo,omitempty"`
}

// AuthorRank 发帖数排行
type AuthorRank struct {
	UserId     int64      `gorm:"column:user_id" json:"_id"`
	PostsCount int64      `gorm:"column:posts_count" json:"postsCount"`
	User       *UserBrief `gorm:"-" json:"user,omitempty"`
}

// LikedPost 点赞数排行中的帖子摘要
type LikedPost struct {
	Id         int64  `json:"id"`
	ImageUrl   string `json:"imageUrl"`
	Title      string `json:"title"`
	CreatedAt  string `json:"createdAt"`
	User       string `json:"user"`
	CategoryId int64  `json:"category"`
	MaxCount   int64  `json:"maxCount"`
}

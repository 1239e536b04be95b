package model

type Video struct {
	VideoId   int64  `gorm:"column:video_id;primaryKey;autoIncrement:false" json:"_id"`
	Title     string `gorm:"column:title;uniqueIndex;size:255" json:"title"`
	VideoUrl  string `gorm:"column:video_url" json:"videoUrl"`
	Views     int64  `gorm:"column:views" json:"views"`
	CreatedAt string `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt string `gorm:"column:updated_at" json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}

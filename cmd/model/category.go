package model

type Category struct {
	CategoryId int64  `gorm:"column:category_id;primaryKey;autoIncrement:false" json:"_id"`
	Title      string `gorm:"column:title;uniqueIndex;size:128" json:"title"`
	ParentId   int64  `gorm:"column:parent_id;index" json:"parentCategory"`
	CreatedAt  string `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  string `gorm:"column:updated_at" json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryInfo 带上级分类的分类
type CategoryInfo struct {
	Category
	Parent *Category `json:"parent,omitempty"`
}

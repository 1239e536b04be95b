package model

// Image 图片在对象存储中的位置
type Image struct {
	PublicId string `gorm:"column:public_id" json:"public_id"`
	Url      string `gorm:"column:url" json:"url"`
}

type User struct {
	UserId    int64    `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"_id"`
	UserName  string   `gorm:"column:user_name;uniqueIndex;size:64" json:"username"`
	Email     string   `gorm:"column:email;uniqueIndex;size:128" json:"email"`
	Password  string   `gorm:"column:password" json:"-"`
	Roles     []string `gorm:"column:roles;type:json;serializer:json" json:"roles"`
	Avatar    Image    `gorm:"embedded;embeddedPrefix:avatar_" json:"avatar"`
	CreatedAt string   `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt string   `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds any of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// UserBrief 列表中展示的作者信息
type UserBrief struct {
	UserId   int64  `json:"_id"`
	UserName string `json:"username"`
	Avatar   Image  `json:"avatar"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{UserId: u.UserId, UserName: u.UserName, Avatar: u.Avatar}
}

package model

import "time"

// UserFollow 用户关注的内容集合
type UserFollow struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	NewsID    uint64    `gorm:"primaryKey;index:idx_user_follows_news" json:"newsId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

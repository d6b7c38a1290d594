package model

import (
	"time"
)

const (
	InteractionLike   = "like"
	InteractionRepost = "repost"
)

// Interaction 用户对内容的交互边，(user_id, news_id, kind) 唯一
type Interaction struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	NewsID    uint64    `gorm:"primaryKey;index:idx_interactions_news" json:"newsId"`
	Kind      string    `gorm:"primaryKey;type:varchar(16)" json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Interaction) TableName() string {
	return "interactions"
}

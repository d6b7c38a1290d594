package model

import (
	"time"
)

type Bookmark struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	NewsID    uint64    `gorm:"primaryKey;index:idx_bookmarks_news" json:"newsId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

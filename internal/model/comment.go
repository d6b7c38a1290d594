package model

import (
	"time"
)

const (
	CommentStatusVisible = "visible"
	CommentStatusHidden  = "hidden"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	NewsID    uint64    `gorm:"not null;index:idx_comments_news" json:"newsId"`
	UserID    uint64    `gorm:"not null;index:idx_comments_user" json:"userId"`
	ParentID  *uint64   `gorm:"index:idx_comments_parent" json:"parentId"` // nil 表示一级评论
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	Status    string    `gorm:"type:varchar(16);not null;default:visible" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}

package model

import (
	"time"
)

const (
	NewsStatusDraft     = "draft"
	NewsStatusPending   = "pending"
	NewsStatusPublished = "published"
	NewsStatusRejected  = "rejected"
)

var NewsCategories = []string{"Politics", "Tech", "Sports", "Business", "World", "Entertainment", "Other"}

// News 内容条目，计数字段只允许由计数投影器修改
type News struct {
	ID                uint64     `gorm:"primaryKey" json:"id"`
	TelegramID        *string    `gorm:"type:varchar(64);uniqueIndex:idx_news_telegram_id" json:"telegramId"`
	ChannelUsername   string     `gorm:"type:varchar(128);index:idx_news_channel" json:"channelUsername"`
	ChannelProfilePic string     `gorm:"type:varchar(512)" json:"channelProfilePic"`
	MediaURL          string     `gorm:"type:varchar(512)" json:"mediaUrl"`
	Title             string     `gorm:"type:varchar(255)" json:"title"`
	Slug              *string    `gorm:"type:varchar(191);uniqueIndex:idx_news_slug" json:"slug"`
	Summary           string     `gorm:"type:varchar(1000)" json:"summary"`
	Content           string     `gorm:"type:text" json:"content"`
	CoverImage        string     `gorm:"type:varchar(512)" json:"coverImage"`
	AuthorID          *uint64    `gorm:"index:idx_news_author" json:"authorId"`
	Category          string     `gorm:"type:varchar(32);not null;default:Other" json:"category"`
	Tags              []string   `gorm:"type:json;serializer:json" json:"tags"`
	Status            string     `gorm:"type:varchar(16);not null;default:published" json:"status"`
	ViewCount         int64      `gorm:"not null;default:0" json:"viewCount"`
	LikeCount         int64      `gorm:"not null;default:0" json:"likeCount"`
	RepostCount       int64      `gorm:"not null;default:0" json:"repostCount"`
	CommentCount      int64      `gorm:"not null;default:0" json:"commentCount"`
	BookmarkCount     int64      `gorm:"not null;default:0" json:"bookmarkCount"`
	PublishedAt       *time.Time `json:"publishedAt"`
	CreatedAt         time.Time  `gorm:"index:idx_news_created_at" json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (News) TableName() string {
	return "news"
}

// IsValidCategory 分类枚举校验
func IsValidCategory(category string) bool {
	for _, c := range NewsCategories {
		if c == category {
			return true
		}
	}
	return false
}

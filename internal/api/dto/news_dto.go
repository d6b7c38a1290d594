package dto

import "time"

type NewsDTO struct {
	ID                uint64        `json:"id"`
	TelegramID        *string       `json:"telegramId,omitempty"`
	ChannelUsername   string        `json:"channelUsername"`
	ChannelProfilePic string        `json:"channelProfilePic"`
	MediaURL          string        `json:"mediaUrl"`
	Title             string        `json:"title"`
	Slug              *string       `json:"slug,omitempty"`
	Summary           string        `json:"summary"`
	Content           string        `json:"content"`
	CoverImage        string        `json:"coverImage"`
	AuthorID          *uint64       `json:"authorId,omitempty"`
	Author            *UserBriefDTO `json:"author,omitempty"`
	Category          string        `json:"category"`
	Tags              []string      `json:"tags"`
	Status            string        `json:"status"`
	ViewCount         int64         `json:"viewCount"`
	LikeCount         int64         `json:"likeCount"`
	RepostCount       int64         `json:"repostCount"`
	CommentCount      int64         `json:"commentCount"`
	BookmarkCount     int64         `json:"bookmarkCount"`
	PublishedAt       *time.Time    `json:"publishedAt"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`

	// 仅在有登录用户时填充
	IsLiked      bool `json:"isLiked"`
	IsReposted   bool `json:"isReposted"`
	IsBookmarked bool `json:"isBookmarked"`
	IsFollowing  bool `json:"isFollowing"`
}

type NewsDetailDTO struct {
	*NewsDTO
	Comments []*CommentDTO `json:"comments"`
}

type CreateNewsDTO struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content" validate:"required"`
	Summary    string   `json:"summary" validate:"omitempty,max=1000"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,dive,max=32"`
	CoverImage string   `json:"coverImage" validate:"omitempty,url"`
	MediaURL   string   `json:"mediaUrl" validate:"omitempty,url"`
}

// IngestNewsDTO 外部频道推送的内容
type IngestNewsDTO struct {
	TelegramID        string     `json:"telegramId" validate:"required,max=64"`
	ChannelUsername   string     `json:"channelUsername" validate:"required,max=128"`
	ChannelProfilePic string     `json:"channelProfilePic"`
	MediaURL          string     `json:"mediaUrl"`
	Title             string     `json:"title" validate:"max=255"`
	Content           string     `json:"content"`
	Category          string     `json:"category"`
	PublishedAt       *time.Time `json:"publishedAt"`
}

// ToggleDTO 切换结果
type ToggleDTO struct {
	State string `json:"state"`
	Count int64  `json:"count"`
}

package dto

import "time"

type CommentDTO struct {
	ID        uint64        `json:"id"`
	NewsID    uint64        `json:"newsId"`
	ParentID  *uint64       `json:"parentId"`
	Content   string        `json:"content"`
	Author    *UserBriefDTO `json:"author"`
	LikeCount int64         `json:"likeCount"`
	IsLiked   bool          `json:"isLiked"`
	CreatedAt time.Time     `json:"createdAt"`
	Replies   []*CommentDTO `json:"replies"`
}

type CreateCommentDTO struct {
	Content string `json:"content" validate:"max=2000"`
}

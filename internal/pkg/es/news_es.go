package es

import "time"

// NewsES 写入 ES 的检索文档，计数不入索引，展示时回库读取
type NewsES struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Content         string    `json:"content"`
	ChannelUsername string    `json:"channel_username"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

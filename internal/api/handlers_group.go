package api

import "Newsroom/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler    *handler.UserHandler
	NewsHandler    *handler.NewsHandler
	CommentHandler *handler.CommentHandler
	ReportHandler  *handler.ReportHandler
	AdminHandler   *handler.AdminHandler
}

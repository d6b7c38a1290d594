package api

import (
	"Newsroom/internal/api/middleware"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, identitySvc service.IdentityService, allowOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware("/api/ping"))
	r.Use(middleware.CORSMiddleware(allowOrigins))
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(identitySvc)
	authOpt := middleware.AuthOptionalMiddleware(identitySvc)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/users")
		{
			// 只需要有效 token，本地用户可能尚不存在
			userGroup.POST("/sync", middleware.TokenMiddleware(), group.UserHandler.Sync)
			userGroup.GET("/profile/:username", group.UserHandler.GetProfile)

			authGroup := userGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.GET("/me", group.UserHandler.GetMe)
				authGroup.PUT("/me", group.UserHandler.UpdateMe)
				authGroup.DELETE("/me", group.UserHandler.DeleteMe)
				authGroup.GET("/following", group.UserHandler.GetFollowing)
				authGroup.POST("/follow/:news_id", group.NewsHandler.ToggleFollow)
			}
		}

		newsGroup := apiGroup.Group("/news")
		{
			authOptGroup := newsGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.GET("", group.NewsHandler.ListNews)
				authOptGroup.GET("/search", group.NewsHandler.SearchNews)
				authOptGroup.GET("/channel/:channel", group.NewsHandler.ListChannelNews)
				authOptGroup.GET("/:news_id", group.NewsHandler.GetNews)
			}

			authGroup := newsGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.DELETE("/:news_id", group.NewsHandler.DeleteNews)
				authGroup.POST("/:news_id/like", group.NewsHandler.ToggleLike)
				authGroup.POST("/:news_id/repost", group.NewsHandler.ToggleRepost)
				authGroup.POST("/:news_id/bookmark", group.NewsHandler.ToggleBookmark)
			}

			writerGroup := authGroup.Group("")
			writerGroup.Use(middleware.CheckRoles(model.RoleWriter, model.RoleEditor, model.RoleAdmin))
			{
				writerGroup.POST("", group.NewsHandler.CreateNews)
			}
		}

		apiGroup.GET("/bookmarks", auth, group.NewsHandler.ListBookmarks)

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("/news/:news_id", authOpt, group.CommentHandler.ListComments)

			authGroup := commentGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("/news/:news_id", group.CommentHandler.CreateComment)
				authGroup.POST("/:comment_id/reply", group.CommentHandler.ReplyComment)
				authGroup.POST("/:comment_id/like", group.CommentHandler.ToggleLike)
			}
		}

		apiGroup.POST("/reports", auth, group.ReportHandler.CreateReport)

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(auth, middleware.CheckRoles(model.RoleAdmin))
		{
			adminGroup.GET("/users", group.AdminHandler.ListUsers)
			adminGroup.PUT("/users/:user_id/role", group.AdminHandler.UpdateUserRole)
			adminGroup.PUT("/users/:user_id/status", group.AdminHandler.UpdateUserStatus)
			adminGroup.DELETE("/users/:user_id", group.AdminHandler.DeleteUser)
			adminGroup.GET("/reports", group.AdminHandler.ListReports)
			adminGroup.PUT("/reports/:report_id", group.AdminHandler.ResolveReport)
			adminGroup.POST("/news/:news_id/recount", group.AdminHandler.RecountNews)
			adminGroup.POST("/maintenance/recount", group.AdminHandler.RecountAll)
			adminGroup.POST("/maintenance/orphans", group.AdminHandler.CleanupOrphans)
			adminGroup.GET("/logs", group.AdminHandler.ListLogs)
		}
	}

	return r
}

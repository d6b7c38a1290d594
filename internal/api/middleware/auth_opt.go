package middleware

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入用户，失败或缺失则 user_id 为 0
func AuthOptionalMiddleware(identitySvc service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(logger.UserIDKey, uint64(0))

		claims, ok := parseBearer(c)
		if !ok {
			c.Next()
			return
		}

		user, err := identitySvc.GetByExternalID(c.Request.Context(), claims.ExternalID)
		if err == nil && user.Status == model.UserStatusActive {
			setPrincipal(c, claims, user)
		}

		c.Next()
	}
}

package middleware

import (
	"Newsroom/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户的角色是否在允许列表中
func CheckRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)

		hasPermission := false
		for _, allowed := range allowedRoles {
			if allowed == role {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/identity"
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/pkg/response"
	"Newsroom/internal/pkg/security"
	"Newsroom/internal/service"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey     = "claims"
	ExternalIDKey = "external_id"
	RoleKey       = "role"
)

// TokenMiddleware 只校验 JWT，用于用户尚未同步到本地的接口
func TokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ExternalIDKey, claims.ExternalID)
		c.Next()
	}
}

// AuthMiddleware 校验 JWT 并解析出本地用户，封禁或停用的用户直接拒绝
func AuthMiddleware(identitySvc service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		user, err := identitySvc.GetByExternalID(c.Request.Context(), claims.ExternalID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				response.Fail(c, response.Unauthorized, "用户未同步，请先调用同步接口")
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}
		if user.Status != model.UserStatusActive {
			response.Error(c, service.ErrUserBanned)
			c.Abort()
			return
		}

		setPrincipal(c, claims, user)
		c.Next()
	}
}

// ClaimsFromContext 取出 TokenMiddleware 注入的声明
func ClaimsFromContext(c *gin.Context) (*identity.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*identity.Claims)
	return claims, ok
}

func parseBearer(c *gin.Context) (*identity.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	token, err := security.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}

	return &identity.Claims{
		ExternalID:     token.Subject,
		Email:          token.Email,
		FirstName:      token.FirstName,
		LastName:       token.LastName,
		ProfilePicture: token.Picture,
	}, true
}

func setPrincipal(c *gin.Context, claims *identity.Claims, user *model.User) {
	c.Set(ClaimsKey, claims)
	c.Set(ExternalIDKey, user.ExternalID)
	c.Set(logger.UserIDKey, user.ID)
	c.Set(RoleKey, user.Role)

	newCtx := context.WithValue(c.Request.Context(), logger.UserIDKey, user.ID)
	c.Request = c.Request.WithContext(newCtx)
}

package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const JWTExpirationTime = time.Hour * 24

var (
	jwtSecret = "change-me"
	jwtIssuer = "newsroom"
)

// PrincipalClaims 外部身份提供方签发的声明，Subject 即外部用户 ID
type PrincipalClaims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Picture   string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Setup 设置签名密钥与签发方
func Setup(secret, issuer string) {
	if secret != "" {
		jwtSecret = secret
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
}

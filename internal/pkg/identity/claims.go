package identity

import (
	"errors"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed identity payload")

// Claims 解析身份所需的最小字段
type Claims struct {
	ExternalID     string
	Email          string
	FirstName      string
	LastName       string
	Username       string
	ProfilePicture string
}

type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// UserPayload 身份提供方的用户结构，HTTP 接口与生命周期事件共用
type UserPayload struct {
	ID             *string        `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       *string        `json:"image_url"`
	Username       *string        `json:"username"`
}

// ToClaims 收窄为 Claims，缺少 id 视为格式错误，缺少邮箱交给调用方判断
func (p *UserPayload) ToClaims() (*Claims, error) {
	if p == nil || p.ID == nil || strings.TrimSpace(*p.ID) == "" {
		return nil, ErrMalformedPayload
	}

	claims := &Claims{
		ExternalID:     strings.TrimSpace(*p.ID),
		FirstName:      deref(p.FirstName),
		LastName:       deref(p.LastName),
		Username:       deref(p.Username),
		ProfilePicture: deref(p.ImageURL),
	}
	for _, e := range p.EmailAddresses {
		if email := strings.TrimSpace(e.EmailAddress); email != "" {
			claims.Email = email
			break
		}
	}
	return claims, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

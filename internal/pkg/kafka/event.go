package kafka

import (
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/identity"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var ErrMalformedEvent = errors.New("malformed event")

// Envelope 生命周期事件的外层结构，data 按 type 再解析
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserEvent 收窄后的用户事件
type UserEvent struct {
	Type       string
	ExternalID string
	Claims     *identity.Claims
}

type deletedPayload struct {
	ID      *string `json:"id"`
	Deleted *bool   `json:"deleted"`
}

// DecodeUserEvent 解析并校验用户生命周期事件，任何不符合预期的输入返回 ErrMalformedEvent
func DecodeUserEvent(raw []byte) (*UserEvent, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	eventType := strings.TrimPrefix(strings.TrimSpace(env.Type), "clerk/")
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: data must be an object", ErrMalformedEvent)
	}

	switch eventType {
	case consts.EventUserCreated, consts.EventUserUpdated:
		var payload identity.UserPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		claims, err := payload.ToClaims()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		return &UserEvent{Type: eventType, ExternalID: claims.ExternalID, Claims: claims}, nil

	case consts.EventUserDeleted:
		var payload deletedPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		if payload.ID == nil || strings.TrimSpace(*payload.ID) == "" {
			return nil, fmt.Errorf("%w: missing id", ErrMalformedEvent)
		}
		return &UserEvent{Type: eventType, ExternalID: strings.TrimSpace(*payload.ID)}, nil
	}

	return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, env.Type)
}

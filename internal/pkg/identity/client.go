package identity

import (
	"Newsroom/internal/api/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

var ErrIdentityNotFound = errors.New("identity not found")

// Provider 按外部 ID 拉取身份声明
type Provider interface {
	GetUser(ctx context.Context, externalID string) (*Claims, error)
}

type Client struct {
	httpClient *resty.Client
}

func NewClient(cfg config.IdentityConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json").
		SetJSONUnmarshaler(json.Unmarshal).
		SetJSONMarshaler(json.Marshal).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &Client{httpClient: client}
}

func (c *Client) GetUser(ctx context.Context, externalID string) (*Claims, error) {
	var payload UserPayload
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&payload).
		Get("/users/" + url.PathEscape(externalID))
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrIdentityNotFound
	case resp.IsError():
		return nil, fmt.Errorf("identity provider returned %d", resp.StatusCode())
	}

	return payload.ToClaims()
}

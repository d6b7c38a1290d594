package kafka

import (
	"Newsroom/internal/pkg/consts"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUserEvent_Created(t *testing.T) {
	raw := []byte(`{"type":"user.created","data":{"id":"user_1","email_addresses":[{"email_address":""},{"email_address":"a@example.com"}],"first_name":"Ann","image_url":"https://img/a.png"}}`)

	event, err := DecodeUserEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, consts.EventUserCreated, event.Type)
	assert.Equal(t, "user_1", event.ExternalID)
	require.NotNil(t, event.Claims)
	assert.Equal(t, "a@example.com", event.Claims.Email)
	assert.Equal(t, "Ann", event.Claims.FirstName)
	assert.Equal(t, "https://img/a.png", event.Claims.ProfilePicture)
}

func TestDecodeUserEvent_PrefixedType(t *testing.T) {
	event, err := DecodeUserEvent([]byte(`{"type":"clerk/user.updated","data":{"id":"user_1"}}`))
	require.NoError(t, err)
	assert.Equal(t, consts.EventUserUpdated, event.Type)
	assert.Empty(t, event.Claims.Email)
}

func TestDecodeUserEvent_Deleted(t *testing.T) {
	event, err := DecodeUserEvent([]byte(`{"type":"user.deleted","data":{"id":"user_9","deleted":true}}`))
	require.NoError(t, err)
	assert.Equal(t, consts.EventUserDeleted, event.Type)
	assert.Equal(t, "user_9", event.ExternalID)
	assert.Nil(t, event.Claims)
}

func TestDecodeUserEvent_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"type":`,
		"data is array":   `{"type":"user.created","data":[1,2]}`,
		"data is string":  `{"type":"user.created","data":"user_1"}`,
		"data missing":    `{"type":"user.created"}`,
		"created no id":   `{"type":"user.created","data":{"email_addresses":[]}}`,
		"deleted no id":   `{"type":"user.deleted","data":{"deleted":true}}`,
		"deleted blank":   `{"type":"user.deleted","data":{"id":"  "}}`,
		"unknown type":    `{"type":"session.created","data":{"id":"s_1"}}`,
		"wrong id type":   `{"type":"user.created","data":{"id":42}}`,
		"emails not list": `{"type":"user.created","data":{"id":"u","email_addresses":"a@b"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeUserEvent([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformedEvent)
		})
	}
}

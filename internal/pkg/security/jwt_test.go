package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("ext_123", "a@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ext_123", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestValidateToken_RejectsTampered(t *testing.T) {
	token, err := GenerateToken("ext_123", "")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateToken_RejectsMissingSubject(t *testing.T) {
	token, err := GenerateToken("", "a@example.com")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

package utils_test

import (
	"testing"
	"time"

	"lexconnect/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := utils.GenerateToken("user-123", "user@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := utils.ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := utils.GenerateToken("user-123", "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestMalformedTokenRejected(t *testing.T) {
	_, err := utils.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	a := utils.HashToken("abc")
	b := utils.HashToken("abc")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, utils.HashToken("abd"))
}

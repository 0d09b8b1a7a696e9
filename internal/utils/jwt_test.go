package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghami/ticketline/internal/utils"
)

const secret = "jwt-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 7, "gio", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(time.Minute), tok.Exp, 5*time.Second)

	claims, err := utils.ParseAccessToken(secret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "gio", claims.Username)
	assert.Equal(t, uint64(7), claims.UserID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 7, "gio", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseAccessToken(secret, tok.Token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 7, "gio", time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseAccessToken("a-different-secret", tok.Token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 7, "gio", time.Minute)
	require.NoError(t, err)

	tampered := tok.Token[:len(tok.Token)-2] + "xx"
	_, err = utils.ParseAccessToken(secret, tampered)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := utils.ParseAccessToken(secret, raw)
		assert.ErrorIs(t, err, utils.ErrInvalidToken)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, utils.VerifyPassword(hash, "hunter22"))
	assert.False(t, utils.VerifyPassword(hash, "hunter23"))
}

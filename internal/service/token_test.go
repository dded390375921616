package service

import (
	"testing"
	"time"

	"projecthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenTestUser = &models.User{
	ID:       "3f1e9b9a-6a4e-4f3c-9a57-6d1f6de60b01",
	Username: "john_doe",
	Email:    "john@ex.com",
}

func TestIssueAndParseToken(t *testing.T) {
	secret := []byte("super-secret")

	token, err := IssueToken(tokenTestUser, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, tokenTestUser.ID, claims.UserID)
	assert.Equal(t, tokenTestUser.Username, claims.Username)
	assert.Equal(t, tokenTestUser.Email, claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("super-secret")

	token, err := IssueToken(tokenTestUser, secret, -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(tokenTestUser, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken("not.a.jwt", []byte("secret"))
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	_, ok := UserFrom(context.Background())
	assert.False(t, ok)

	id, ok := UserFrom(WithUser(context.Background(), 9))
	assert.True(t, ok)
	assert.Equal(t, 9, id)

	_, ok = UserFrom(WithUser(context.Background(), 0))
	assert.False(t, ok)
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	signed, err := tokens.Issue(5, "ada", "ada@example.com")
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, 5, claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "5", claims.Subject)
}

func TestTokensExpired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issued }

	signed, err := tokens.Issue(5, "ada", "ada@example.com")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokensRejectsOtherSecret(t *testing.T) {
	signed, err := NewTokens("one", time.Hour).Issue(5, "ada", "ada@example.com")
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 5})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
	assert.False(t, CheckPassword("", "hunter22"))
}

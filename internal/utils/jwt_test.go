package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	tok, err := GenerateJWT("ana", "secret", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseJWT(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.UserID)
	assert.Equal(t, "ana", claims.Subject)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	tok, err := GenerateJWT("ana", "secret", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseJWT(tok, "other")
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestJWTRejectsExpired(t *testing.T) {
	tok, err := GenerateJWT("ana", "secret", time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseJWT(tok, "secret")
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTRejectsEmptyUser(t *testing.T) {
	tok, err := GenerateJWT("", "secret", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseJWT(tok, "secret")
	require.ErrorIs(t, err, ErrMissingSubject)
}

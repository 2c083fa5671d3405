package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"livescore/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	auth := NewAuthService("test-secret")

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)
	require.True(t, auth.CheckPassword(hash, "secret1"))
	require.False(t, auth.CheckPassword(hash, "secret2"))
}

func TestIssueAndParseToken(t *testing.T) {
	auth := NewAuthService("test-secret")
	user := &models.User{ID: 7, Email: "ana@x.com", Role: "USER"}

	token, err := auth.IssueToken(user)
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserID)
	require.Equal(t, "ana@x.com", claims.Email)
	require.Equal(t, "USER", claims.Role)
	require.WithinDuration(t, time.Now().Add(SessionTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	issuer := NewAuthService("key-one")
	verifier := NewAuthService("key-two")

	token, err := issuer.IssueToken(&models.User{ID: 1, Email: "a@x.com", Role: "USER"})
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	auth := NewAuthService("test-secret")

	// токен с истёкшим exp, подписанный тем же ключом
	claims := &Claims{
		UserID: 1,
		Email:  "a@x.com",
		Role:   "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.ParseToken(expired)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService("test-secret")
	_, err := auth.ParseToken("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidSession)
}

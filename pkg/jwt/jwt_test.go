package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

func newTestService() *JWTService {
	return NewJWTService(testSecret, time.Hour, 24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "access", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService("another-secret-key-32-chars-long!!!", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(1, "a@b.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	// 过期时间为负，生成即过期
	svc := NewJWTService(testSecret, -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(1, "a@b.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.GenerateRefreshToken(7, "user@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "refresh", claims.Subject)

	// Access Token 不能当 Refresh Token 用
	access, err := svc.GenerateAccessToken(7, "user@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetExpires(t *testing.T) {
	svc := newTestService()
	assert.Equal(t, time.Hour, svc.GetAccessExpire())
	assert.Equal(t, 24*time.Hour, svc.GetRefreshExpire())
}

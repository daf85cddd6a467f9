package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_AccessToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 15, 1440)

	token, err := tm.GenerateAccessToken("user-1", "user@test.com", []string{"renter"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, []string{"renter"}, claims.Roles)
}

func TestTokenManager_RefreshToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 15, 1440)

	token, err := tm.GenerateRefreshToken("user-1", "user@test.com")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.Empty(t, claims.Roles)
}

func TestTokenManager_Rejections(t *testing.T) {
	tm := NewTokenManager("test-secret", 15, 1440)

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", 15, 1440)
		token, err := other.GenerateAccessToken("user-1", "user@test.com", nil)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := &tokenManager{secret: []byte("test-secret"), accessExpiry: -time.Minute}
		token, err := expired.GenerateAccessToken("user-1", "user@test.com", nil)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

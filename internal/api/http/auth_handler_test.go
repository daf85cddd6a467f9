package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentride-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Refresh(t *testing.T) {
	tm := security.NewTokenManager("test-secret", 15, 1440)
	h := NewAuthHandler(tm)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)
		return rec
	}

	t.Run("Rotates The Pair", func(t *testing.T) {
		refresh, err := tm.GenerateRefreshToken("user-1", "user@test.com")
		assert.NoError(t, err)

		body, _ := json.Marshal(refreshRequest{RefreshToken: refresh})
		rec := post(string(body))
		assert.Equal(t, http.StatusOK, rec.Code)

		var pair tokenPairResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))

		claims, err := tm.ValidateToken(pair.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)

		claims, err = tm.ValidateToken(pair.RefreshToken)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("Access Token Is Not A Refresh Token", func(t *testing.T) {
		access, err := tm.GenerateAccessToken("user-1", "user@test.com", nil)
		assert.NoError(t, err)

		body, _ := json.Marshal(refreshRequest{RefreshToken: access})
		rec := post(string(body))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		rec := post(`{"refresh_token":"not-a-token"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Missing Token", func(t *testing.T) {
		rec := post(`{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

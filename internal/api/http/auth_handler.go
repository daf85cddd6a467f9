package http

import (
	"encoding/json"
	"net/http"

	"rentride-backend/internal/security"
)

// AuthHandler exchanges a valid refresh token for a fresh token pair. There
// is no login endpoint here; callers arrive with tokens issued by the
// identity system and only rotate them through this API.
type AuthHandler struct {
	tm security.TokenManager
}

func NewAuthHandler(tm security.TokenManager) *AuthHandler {
	return &AuthHandler{tm: tm}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "INVALID_REQUEST", Message: "refresh_token is required"})
		return
	}

	claims, err := h.tm.ValidateToken(req.RefreshToken)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "invalid refresh token"})
		return
	}
	if claims.Type != security.TokenTypeRefresh {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "refresh token required"})
		return
	}

	access, err := h.tm.GenerateAccessToken(claims.UserID, claims.Email, claims.Roles)
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := h.tm.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

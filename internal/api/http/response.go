package http

import (
	"encoding/json"
	"net/http"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain error codes onto HTTP statuses. Unknown errors are
// logged server-side and surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, errorBody{Code: "INTERNAL", Message: "internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Code: code, Message: err.Error()})
}

func statusFor(code string) int {
	switch code {
	case domain.CodeNotFound, domain.CodeCouponNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidWindow, domain.CodeInvalidRequest, domain.CodeCouponExpired:
		return http.StatusBadRequest
	case domain.CodeSlotConflict, domain.CodeRenterDoubleBooking, domain.CodeIllegalTransition,
		domain.CodeDuplicateFinalContract, domain.CodeVehicleUnavailable:
		return http.StatusConflict
	case domain.CodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case domain.CodeForbidden, domain.CodeRenterInactive:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

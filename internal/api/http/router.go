// Package http wires the booking lifecycle onto a gorilla/mux router. Every
// route under /api requires a Bearer access token except the payment gateway
// callback, which authenticates by signature instead.
package http

import (
	"net/http"

	"rentride-backend/internal/security"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth         *AuthHandler
	Booking      *BookingHandler
	Slot         *SlotHandler
	Payment      *PaymentHandler
	Notification *NotificationHandler
	Wallet       *WalletHandler
}

func NewRouter(tm security.TokenManager, h Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// The gateway redirects the renter's browser here; identity comes from
	// the HMAC signature, not a token.
	r.HandleFunc("/api/payment/callback", h.Payment.Callback).Methods(http.MethodGet)

	// Token rotation authenticates with the refresh token itself.
	r.HandleFunc("/api/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(tm))

	api.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.Booking.ListMine).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}", h.Booking.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/confirm", h.Booking.Confirm).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/cancel", h.Booking.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/deliver", h.Booking.Deliver).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/receive", h.Booking.Receive).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/return", h.Booking.Return).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/payment-url", h.Payment.PaymentURL).Methods(http.MethodGet)

	api.HandleFunc("/provider/bookings", h.Booking.ListForProvider).Methods(http.MethodGet)

	api.HandleFunc("/vehicles/{id}/slots", h.Slot.ListForVehicle).Methods(http.MethodGet)

	api.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	api.HandleFunc("/wallet", h.Wallet.Get).Methods(http.MethodGet)
	api.HandleFunc("/wallet/transactions", h.Wallet.ListTransactions).Methods(http.MethodGet)

	return r
}

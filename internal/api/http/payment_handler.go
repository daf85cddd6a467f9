package http

import (
	"net"
	"net/http"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/logger"
	"rentride-backend/internal/payment"
	"rentride-backend/internal/service"

	"github.com/gorilla/mux"
)

// PaymentHandler bridges the hosted payment gateway and the settlement
// coordinator.
type PaymentHandler struct {
	gateway       *payment.Gateway
	bookingSvc    service.BookingService
	settlementSvc service.SettlementService
}

func NewPaymentHandler(gateway *payment.Gateway, bookingSvc service.BookingService, settlementSvc service.SettlementService) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, bookingSvc: bookingSvc, settlementSvc: settlementSvc}
}

// PaymentURL returns the gateway redirect URL for an unpaid booking.
func (h *PaymentHandler) PaymentURL(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), UserIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if booking.Status != domain.BookingStatusUnpaid {
		writeError(w, domain.E(domain.CodeIllegalTransition,
			"booking is not awaiting payment", domain.ErrIllegalTransition))
		return
	}
	url := h.gateway.BuildPaymentURL(booking.TxnCode, booking.TotalCents,
		"payment for booking "+booking.ID, clientIP(r))
	writeJSON(w, http.StatusOK, map[string]string{"payment_url": url})
}

// Callback handles the gateway's signed return redirect. The signature is
// verified before anything is read from the parameters; a failed payment
// acknowledges without touching the booking.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	result, err := h.gateway.VerifyCallback(r.URL.Query())
	if err != nil {
		logger.Warn("Rejected payment callback", "error", err)
		writeJSON(w, http.StatusBadRequest, errorBody{Code: domain.CodeInvalidRequest, Message: "invalid payment callback"})
		return
	}
	if !result.Success {
		logger.Info("Payment failed at gateway", "txn_ref", result.TxnRef)
		writeJSON(w, http.StatusOK, map[string]any{"confirmed": false})
		return
	}

	// OrderInfo carries "payment for booking <id>".
	bookingID := bookingIDFromOrderInfo(result.OrderInfo)
	if bookingID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: domain.CodeInvalidRequest, Message: "callback missing booking reference"})
		return
	}
	if err := h.settlementSvc.OnPaymentConfirmed(r.Context(), bookingID, result.TxnRef); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"confirmed": true, "booking_id": bookingID})
}

func bookingIDFromOrderInfo(orderInfo string) string {
	const prefix = "payment for booking "
	if len(orderInfo) <= len(prefix) || orderInfo[:len(prefix)] != prefix {
		return ""
	}
	return orderInfo[len(prefix):]
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

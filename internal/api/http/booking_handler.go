package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/service"

	"github.com/gorilla/mux"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	bookingSvc    service.BookingService
	settlementSvc service.SettlementService
}

func NewBookingHandler(bookingSvc service.BookingService, settlementSvc service.SettlementService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc, settlementSvc: settlementSvc}
}

type createBookingRequest struct {
	TimeStart      time.Time                `json:"time_start"`
	TimeEnd        time.Time                `json:"time_end"`
	Vehicles       []vehicleSelectionDTO    `json:"vehicles"`
	CouponID       string                   `json:"coupon_id,omitempty"`
	PenaltyType    domain.PenaltyType       `json:"penalty_type,omitempty"`
	PenaltyValue   int64                    `json:"penalty_value,omitempty"`
	MinCancelHours int32                    `json:"min_cancel_hours,omitempty"`
}

type vehicleSelectionDTO struct {
	VehicleID  string `json:"vehicle_id"`
	WithDriver bool   `json:"with_driver"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: domain.CodeInvalidRequest, Message: "malformed request body"})
		return
	}
	selections := make([]service.VehicleSelection, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		selections = append(selections, service.VehicleSelection{VehicleID: v.VehicleID, WithDriver: v.WithDriver})
	}
	booking, err := h.bookingSvc.CreateBooking(r.Context(), UserIDFrom(r.Context()), service.CreateBookingRequest{
		TimeStart:      req.TimeStart,
		TimeEnd:        req.TimeEnd,
		Vehicles:       selections,
		CouponID:       req.CouponID,
		PenaltyType:    req.PenaltyType,
		PenaltyValue:   req.PenaltyValue,
		MinCancelHours: req.MinCancelHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), UserIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingSvc.ConfirmBooking(r.Context(), UserIDFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BookingStatusConfirmed)})
}

type cancelBookingRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelBookingRequest
	// Reason is optional; an empty body cancels without one.
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Reason == "" {
		req.Reason = "cancelled by user"
	}
	if err := h.settlementSvc.OnCancelled(r.Context(), mux.Vars(r)["id"], req.Reason, UserIDFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BookingStatusCancelled)})
}

func (h *BookingHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	if err := h.settlementSvc.OnDeliveryConfirmed(r.Context(), UserIDFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BookingStatusDelivered)})
}

func (h *BookingHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := h.settlementSvc.OnReceiptConfirmed(r.Context(), UserIDFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BookingStatusReceivedByCustomer)})
}

type returnBookingRequest struct {
	FinalCostCents int64  `json:"final_cost_cents,omitempty"`
	Note           string `json:"note,omitempty"`
}

func (h *BookingHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnBookingRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := h.settlementSvc.OnReturnConfirmed(r.Context(), UserIDFrom(r.Context()), mux.Vars(r)["id"], req.FinalCostCents, req.Note); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.BookingStatusCompleted)})
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int32            `json:"total"`
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookingSvc.ListByRenter(r.Context(), UserIDFrom(r.Context()), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func (h *BookingHandler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	bookings, total, err := h.bookingSvc.ListByProvider(r.Context(), UserIDFrom(r.Context()), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingListResponse{Bookings: bookings, Total: total})
}

func pagination(r *http.Request) (int32, int32) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}

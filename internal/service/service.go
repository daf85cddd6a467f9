package service

import (
	"context"
	"time"

	"rentride-backend/internal/domain"
)

// VehicleSelection is one vehicle requested in a booking, optionally with a
// driver.
type VehicleSelection struct {
	VehicleID  string
	WithDriver bool
}

// CreateBookingRequest carries everything the reservation orchestrator needs;
// the caller's identity arrives as an explicit argument, never from ambient
// state.
type CreateBookingRequest struct {
	TimeStart      time.Time
	TimeEnd        time.Time
	Vehicles       []VehicleSelection
	CouponID       string
	PenaltyType    domain.PenaltyType
	PenaltyValue   int64
	MinCancelHours int32
}

type BookingService interface {
	CreateBooking(ctx context.Context, renterID string, req CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, callerID, bookingID string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, providerID, bookingID string) error
	ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByProvider(ctx context.Context, providerID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type SettlementService interface {
	OnPaymentConfirmed(ctx context.Context, bookingID, txnRef string) error
	OnDeliveryConfirmed(ctx context.Context, providerID, bookingID string) error
	OnReceiptConfirmed(ctx context.Context, renterID, bookingID string) error
	OnReturnConfirmed(ctx context.Context, callerID, bookingID string, finalCostCents int64, note string) error
	OnCancelled(ctx context.Context, bookingID, reason, initiatorID string) error
}

type SlotService interface {
	ListActive(ctx context.Context, vehicleID string, after time.Time) ([]domain.BookedSlot, error)
}

// ReclaimService arms and disarms the abandonment timer for unpaid bookings
// and runs the background worker that fires due reclaims.
type ReclaimService interface {
	Cancel(ctx context.Context, bookingID string) error
	// ReclaimDue drains every due queue entry once; the worker loop and the
	// cron job share this path.
	ReclaimDue(ctx context.Context) int
	Start(ctx context.Context)
	Stop()
}

type WalletService interface {
	Credit(ctx context.Context, userID string, amountCents int64, txnType domain.WalletTransactionType, bookingID, note string) (*domain.WalletTransaction, error)
	Debit(ctx context.Context, userID string, amountCents int64, txnType domain.WalletTransactionType, bookingID, note string) (*domain.WalletTransaction, error)
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, walletID string, page, pageSize int32) ([]domain.WalletTransaction, int32, error)
}

// NotificationService is the audit/notification sink. Failures are logged and
// swallowed: delivery must never roll back a booking or settlement.
type NotificationService interface {
	Notify(ctx context.Context, userID, title, message string, attributes map[string]string)
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, email, renterName, bookingID string) error
	SendBookingCancelled(ctx context.Context, email, bookingID, reason string) error
	SendPaymentConfirmed(ctx context.Context, email, bookingID string) error
	SendBookingCompleted(ctx context.Context, email, bookingID string, settlementCents int64) error
}

package repository

import (
	"context"
	"time"

	"rentride-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
}

type BookingRepository interface {
	// CreateWithDetails persists the booking, its details, one slot-ledger
	// entry per detail, and the reclaim-queue entry in a single transaction.
	// Vehicles are locked for the overlap check; any conflict rolls the whole
	// unit back with ErrSlotConflict.
	CreateWithDetails(ctx context.Context, booking *domain.Booking, reclaimDueAt time.Time) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// UpdateStatus applies a simple transition with an optimistic status
	// gate; zero rows affected surfaces ErrIllegalTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	// HasActiveOverlap reports whether the renter already holds an
	// UNPAID/PENDING/CONFIRMED booking overlapping the window.
	HasActiveOverlap(ctx context.Context, renterID string, from, to time.Time) (bool, error)
	ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByProvider(ctx context.Context, providerID, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ReclaimIfUnpaid tears down the booking, its details, its slots, and its
	// reclaim-queue entry in one transaction, but only if the booking still
	// reads UNPAID inside that transaction. Returns false when payment won.
	ReclaimIfUnpaid(ctx context.Context, id string) (bool, error)
}

type SlotRepository interface {
	ListActive(ctx context.Context, vehicleID string, after time.Time) ([]domain.BookedSlot, error)
	// DeleteOrphans removes entries whose booking no longer holds slots
	// (reconciliation sweep).
	DeleteOrphans(ctx context.Context) (int64, error)
}

type ReclaimRepository interface {
	// Cancel disarms a pending reclaim. Cancelling an already-fired or
	// already-cancelled entry is a no-op.
	Cancel(ctx context.Context, bookingID string) error
	// ClaimDue returns booking IDs whose reclaim is due at now.
	ClaimDue(ctx context.Context, now time.Time, limit int32) ([]string, error)
}

type ContractRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Contract, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.ContractStatus) error
	ListByProvider(ctx context.Context, providerID string, page, pageSize int32) ([]domain.Contract, int32, error)
	GetFinalByContractID(ctx context.Context, contractID string) (*domain.FinalContract, error)
}

// SettlementRepository groups the multi-entity atomic units of the settlement
// coordinator. Each method is one transaction; partial completion rolls back.
type SettlementRepository interface {
	// ConfirmPayment gates the booking on UNPAID, moves it to PENDING,
	// records the gateway transaction code, inserts the contract, and disarms
	// the reclaim entry.
	ConfirmPayment(ctx context.Context, bookingID, txnCode string, contract *domain.Contract) error
	// FinalizeReturn settles the return as one unit: the booking advances
	// through RETURNED to COMPLETED, the contract moves to FINISHED, the
	// final contract is inserted, and the provider payout is posted. A final
	// contract already present surfaces ErrDuplicateFinalContract; any other
	// failure rolls the whole unit back, so the call is safe to retry.
	FinalizeReturn(ctx context.Context, bookingID string, final *domain.FinalContract, payout *domain.WalletTransaction) error
	// CancelBooking re-reads the booking under lock and gates on the expected
	// status the caller priced its postings against; a booking whose status
	// moved in between surfaces ErrIllegalTransition so the caller can retry
	// with fresh postings. On success it releases every slot for the
	// booking's details, cancels the contract if one exists, applies the
	// wallet postings (balance update + transaction row each), stores the
	// assessed penalty, and disarms the reclaim entry.
	CancelBooking(ctx context.Context, bookingID string, expected domain.BookingStatus, penaltyCents int64, postings []domain.WalletTransaction) error
}

type WalletRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	// Post inserts the transaction and applies its amount to the wallet
	// balance atomically. A debit that would take the balance negative fails
	// with ErrInsufficientBalance.
	Post(ctx context.Context, txn *domain.WalletTransaction) error
	ListTransactions(ctx context.Context, walletID string, page, pageSize int32) ([]domain.WalletTransaction, int32, error)
}

type CouponRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Coupon, error)
	ExpirePast(ctx context.Context, now time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	PurgeRead(ctx context.Context, olderThan time.Time) (int64, error)
}

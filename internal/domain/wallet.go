package domain

import "time"

type Wallet struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type WalletTransactionStatus string

const (
	WalletTxnStatusPending    WalletTransactionStatus = "PENDING"
	WalletTxnStatusProcessing WalletTransactionStatus = "PROCESSING"
	WalletTxnStatusApproved   WalletTransactionStatus = "APPROVED"
	WalletTxnStatusRejected   WalletTransactionStatus = "REJECTED"
	WalletTxnStatusCancelled  WalletTransactionStatus = "CANCELLED"
)

type WalletTransactionType string

const (
	WalletTxnTypeRefund     WalletTransactionType = "REFUND"
	WalletTxnTypePenalty    WalletTransactionType = "PENALTY"
	WalletTxnTypePayout     WalletTransactionType = "PAYOUT"
	WalletTxnTypeTopUp      WalletTransactionType = "TOP_UP"
	WalletTxnTypeWithdrawal WalletTransactionType = "WITHDRAWAL"
)

type WalletTransaction struct {
	ID         string                  `json:"id"`
	WalletID   string                  `json:"wallet_id"`
	AmountCents int64                  `json:"amount_cents"` // positive for credit, negative for debit
	Type       WalletTransactionType   `json:"type"`
	Status     WalletTransactionStatus `json:"status"`
	BookingID  *string                 `json:"booking_id,omitempty"`
	Note       string                  `json:"note"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

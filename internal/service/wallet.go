package service

import (
	"context"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"

	"github.com/google/uuid"
)

type walletService struct {
	walletRepo repository.WalletRepository
}

func NewWalletService(walletRepo repository.WalletRepository) WalletService {
	return &walletService{walletRepo: walletRepo}
}

func (s *walletService) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return s.walletRepo.GetByUserID(ctx, userID)
}

func (s *walletService) ListTransactions(ctx context.Context, walletID string, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	return s.walletRepo.ListTransactions(ctx, walletID, page, pageSize)
}

func (s *walletService) Credit(ctx context.Context, userID string, amountCents int64, txnType domain.WalletTransactionType, bookingID, note string) (*domain.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.E(domain.CodeInvalidRequest, "credit amount must be positive", domain.ErrInvalidRequest)
	}
	return s.postTxn(ctx, userID, amountCents, txnType, bookingID, note)
}

func (s *walletService) Debit(ctx context.Context, userID string, amountCents int64, txnType domain.WalletTransactionType, bookingID, note string) (*domain.WalletTransaction, error) {
	if amountCents <= 0 {
		return nil, domain.E(domain.CodeInvalidRequest, "debit amount must be positive", domain.ErrInvalidRequest)
	}
	return s.postTxn(ctx, userID, -amountCents, txnType, bookingID, note)
}

func (s *walletService) postTxn(ctx context.Context, userID string, amountCents int64, txnType domain.WalletTransactionType, bookingID, note string) (*domain.WalletTransaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	txn := &domain.WalletTransaction{
		ID:          uuid.NewString(),
		WalletID:    wallet.ID,
		AmountCents: amountCents,
		Type:        txnType,
		Status:      domain.WalletTxnStatusApproved,
		Note:        note,
	}
	if bookingID != "" {
		txn.BookingID = &bookingID
	}
	if err := s.walletRepo.Post(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

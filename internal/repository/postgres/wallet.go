package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, balance_cents, created_at, updated_at FROM wallets WHERE user_id = $1`, userID).
		Scan(&w.ID, &w.UserID, &w.BalanceCents, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeNotFound, "no wallet for user "+userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// execer covers both *sql.DB and *sql.Tx so settlement can post inside its
// own transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func postWalletTxn(ctx context.Context, e execer, txn *domain.WalletTransaction) error {
	now := time.Now()

	// Atomic per-wallet increment: concurrent postings on the same wallet
	// serialize on the row, so no update is lost. The balance guard keeps a
	// debit from going negative.
	res, err := e.ExecContext(ctx,
		`UPDATE wallets SET balance_cents = balance_cents + $1, updated_at = $2
		 WHERE id = $3 AND balance_cents + $1 >= 0`,
		txn.AmountCents, now, txn.WalletID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.E(domain.CodeInsufficientBalance,
			"wallet balance too low", domain.ErrInsufficientBalance)
	}

	_, err = e.ExecContext(ctx,
		`INSERT INTO wallet_transactions (id, wallet_id, amount_cents, type, status, booking_id, note, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		txn.ID, txn.WalletID, txn.AmountCents, txn.Type, txn.Status, txn.BookingID, txn.Note, now, now)
	if err != nil {
		return err
	}
	txn.CreatedAt = now
	txn.UpdatedAt = now
	return nil
}

func (r *walletRepository) Post(ctx context.Context, txn *domain.WalletTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := postWalletTxn(ctx, tx, txn); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID string, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM wallet_transactions WHERE wallet_id = $1`, walletID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, wallet_id, amount_cents, type, status, booking_id, COALESCE(note, ''), created_at, updated_at
		 FROM wallet_transactions WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		walletID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		var t domain.WalletTransaction
		if err := rows.Scan(&t.ID, &t.WalletID, &t.AmountCents, &t.Type, &t.Status, &t.BookingID, &t.Note, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		txns = append(txns, t)
	}
	return txns, count, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, COALESCE(phone_number, ''), name, status, created_at, updated_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.Name, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.E(domain.CodeNotFound, "user not found: "+id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

package postgres

import (
	"database/sql"

	"rentride-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.SlotRepository
	repository.ReclaimRepository
	repository.ContractRepository
	repository.SettlementRepository
	repository.WalletRepository
	repository.CouponRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		SlotRepository:         NewSlotRepository(db),
		ReclaimRepository:      NewReclaimRepository(db),
		ContractRepository:     NewContractRepository(db),
		SettlementRepository:   NewSettlementRepository(db),
		WalletRepository:       NewWalletRepository(db),
		CouponRepository:       NewCouponRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

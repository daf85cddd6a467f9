package service

import (
	"context"
	"time"

	"rentride-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateWithDetails(ctx context.Context, booking *domain.Booking, reclaimDueAt time.Time) error {
	args := m.Called(ctx, booking, reclaimDueAt)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockBookingRepo) HasActiveOverlap(ctx context.Context, renterID string, from, to time.Time) (bool, error) {
	args := m.Called(ctx, renterID, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByProvider(ctx context.Context, providerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, providerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ReclaimIfUnpaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSlotRepo
type MockSlotRepo struct {
	mock.Mock
}

func (m *MockSlotRepo) ListActive(ctx context.Context, vehicleID string, after time.Time) ([]domain.BookedSlot, error) {
	args := m.Called(ctx, vehicleID, after)
	return args.Get(0).([]domain.BookedSlot), args.Error(1)
}
func (m *MockSlotRepo) DeleteOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockReclaimRepo
type MockReclaimRepo struct {
	mock.Mock
}

func (m *MockReclaimRepo) Cancel(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}
func (m *MockReclaimRepo) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]string, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) GetByBookingID(ctx context.Context, bookingID string) (*domain.Contract, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ContractStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockContractRepo) ListByProvider(ctx context.Context, providerID string, page, pageSize int32) ([]domain.Contract, int32, error) {
	args := m.Called(ctx, providerID, page, pageSize)
	return args.Get(0).([]domain.Contract), args.Get(1).(int32), args.Error(2)
}
func (m *MockContractRepo) GetFinalByContractID(ctx context.Context, contractID string) (*domain.FinalContract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalContract), args.Error(1)
}

// MockSettlementRepo
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) ConfirmPayment(ctx context.Context, bookingID, txnCode string, contract *domain.Contract) error {
	args := m.Called(ctx, bookingID, txnCode, contract)
	return args.Error(0)
}
func (m *MockSettlementRepo) FinalizeReturn(ctx context.Context, bookingID string, final *domain.FinalContract, payout *domain.WalletTransaction) error {
	args := m.Called(ctx, bookingID, final, payout)
	return args.Error(0)
}
func (m *MockSettlementRepo) CancelBooking(ctx context.Context, bookingID string, expected domain.BookingStatus, penaltyCents int64, postings []domain.WalletTransaction) error {
	args := m.Called(ctx, bookingID, expected, penaltyCents, postings)
	return args.Error(0)
}

// MockWalletRepo
type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletRepo) Post(ctx context.Context, txn *domain.WalletTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}
func (m *MockWalletRepo) ListTransactions(ctx context.Context, walletID string, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	args := m.Called(ctx, walletID, page, pageSize)
	return args.Get(0).([]domain.WalletTransaction), args.Get(1).(int32), args.Error(2)
}

// MockCouponRepo
type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) GetByID(ctx context.Context, id string) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepo) PurgeRead(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID, title, message string, attributes map[string]string) {
	m.Called(ctx, userID, title, message, attributes)
}
func (m *MockNotificationService) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreated(ctx context.Context, email, renterName, bookingID string) error {
	args := m.Called(ctx, email, renterName, bookingID)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email, bookingID, reason string) error {
	args := m.Called(ctx, email, bookingID, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentConfirmed(ctx context.Context, email, bookingID string) error {
	args := m.Called(ctx, email, bookingID)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCompleted(ctx context.Context, email, bookingID string, settlementCents int64) error {
	args := m.Called(ctx, email, bookingID, settlementCents)
	return args.Error(0)
}

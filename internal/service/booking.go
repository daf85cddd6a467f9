package service

import (
	"context"
	"strings"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/logger"
	"rentride-backend/internal/repository"
	"rentride-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	couponRepo   repository.CouponRepository
	noteSvc      NotificationService
	emailSvc     EmailService
	reclaimDelay time.Duration
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	couponRepo repository.CouponRepository,
	noteSvc NotificationService,
	emailSvc EmailService,
	reclaimDelay time.Duration,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		couponRepo:   couponRepo,
		noteSvc:      noteSvc,
		emailSvc:     emailSvc,
		reclaimDelay: reclaimDelay,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, renterID string, req CreateBookingRequest) (*domain.Booking, error) {
	renter, err := s.userRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	if renter.Status != domain.UserStatusActive {
		return nil, domain.E(domain.CodeRenterInactive, "renter account is not active", domain.ErrRenterInactive)
	}

	now := time.Now()
	if !req.TimeStart.Before(req.TimeEnd) {
		return nil, domain.E(domain.CodeInvalidWindow, "booking start must be before booking end", domain.ErrInvalidWindow)
	}
	if req.TimeStart.Before(now) {
		return nil, domain.E(domain.CodeInvalidWindow, "booking start must not be in the past", domain.ErrInvalidWindow)
	}
	if len(req.Vehicles) == 0 {
		return nil, domain.E(domain.CodeInvalidRequest, "at least one vehicle must be selected", domain.ErrInvalidRequest)
	}

	// A renter cannot stack a second active booking onto the same window,
	// independent of per-vehicle slot conflicts.
	overlap, err := s.bookingRepo.HasActiveOverlap(ctx, renterID, req.TimeStart, req.TimeEnd)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.E(domain.CodeRenterDoubleBooking,
			"you already have an active booking overlapping this window", domain.ErrRenterDoubleBooking)
	}

	var (
		details    []domain.BookingDetail
		totalCents int64
		providerID string
	)
	for _, sel := range req.Vehicles {
		vehicle, err := s.vehicleRepo.GetByID(ctx, sel.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.Status != domain.VehicleStatusAvailable {
			return nil, domain.E(domain.CodeVehicleUnavailable,
				"vehicle "+vehicle.ID+" is not available", domain.ErrVehicleUnavailable)
		}
		if vehicle.ProviderID == renterID {
			return nil, domain.E(domain.CodeForbidden, "you cannot book your own vehicle", domain.ErrForbidden)
		}
		// One booking settles against one provider contract, so every
		// vehicle in the selection must belong to the same provider.
		if providerID == "" {
			providerID = vehicle.ProviderID
		} else if providerID != vehicle.ProviderID {
			return nil, domain.E(domain.CodeInvalidRequest,
				"all vehicles in a booking must belong to the same provider", domain.ErrInvalidRequest)
		}

		quote := utils.QuoteVehicle(vehicle, req.TimeStart, req.TimeEnd, sel.WithDriver)
		details = append(details, domain.BookingDetail{
			ID:             uuid.NewString(),
			VehicleID:      vehicle.ID,
			CostCents:      quote.CostCents,
			DriverFeeCents: quote.DriverFeeCents,
		})
		totalCents += quote.TotalCents
	}

	var (
		couponID      *string
		discountCents int64
	)
	if req.CouponID != "" {
		coupon, err := s.couponRepo.GetByID(ctx, req.CouponID)
		if err != nil {
			return nil, err
		}
		if !coupon.Usable(now) {
			return nil, domain.E(domain.CodeCouponExpired, "coupon "+coupon.ID+" has expired", domain.ErrCouponExpired)
		}
		discountCents = utils.ApplyDiscount(totalCents, coupon.DiscountPercent)
		couponID = &coupon.ID
	}

	booking := &domain.Booking{
		ID:             uuid.NewString(),
		RenterID:       renterID,
		TimeStart:      req.TimeStart,
		TimeEnd:        req.TimeEnd,
		TotalCents:     totalCents - discountCents,
		DiscountCents:  discountCents,
		CouponID:       couponID,
		PenaltyType:    req.PenaltyType,
		PenaltyValue:   req.PenaltyValue,
		MinCancelHours: req.MinCancelHours,
		TxnCode:        newTxnCode(),
		Status:         domain.BookingStatusUnpaid,
		Details:        details,
	}

	// Slot reservation, booking, details, and the reclaim entry commit as
	// one unit; any slot conflict rolls everything back.
	if err := s.bookingRepo.CreateWithDetails(ctx, booking, now.Add(s.reclaimDelay)); err != nil {
		return nil, err
	}

	logger.Info("Booking created", "booking_id", booking.ID, "renter_id", renterID,
		"vehicles", len(details), "total_cents", booking.TotalCents, "reclaim_in", s.reclaimDelay)

	s.noteSvc.Notify(ctx, providerID, "New Booking Request",
		renter.Name+" requested a booking awaiting payment", map[string]string{
			"type":       "BOOKING_CREATED",
			"booking_id": booking.ID,
		})
	if err := s.emailSvc.SendBookingCreated(ctx, renter.Email, renter.Name, booking.ID); err != nil {
		logger.Warn("Booking-created email failed", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, callerID, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID == callerID {
		return booking, nil
	}
	providerID, err := s.providerOf(ctx, booking)
	if err != nil {
		return nil, err
	}
	if providerID != callerID {
		return nil, domain.E(domain.CodeForbidden, "booking belongs to another user", domain.ErrForbidden)
	}
	return booking, nil
}

// ConfirmBooking is the provider's review step after payment: PENDING to
// CONFIRMED.
func (s *bookingService) ConfirmBooking(ctx context.Context, providerID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	owner, err := s.providerOf(ctx, booking)
	if err != nil {
		return err
	}
	if owner != providerID {
		return domain.E(domain.CodeForbidden, "only the vehicle's provider may confirm this booking", domain.ErrForbidden)
	}
	if err := booking.TransitionTo(domain.BookingStatusConfirmed); err != nil {
		return err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusPending, domain.BookingStatusConfirmed); err != nil {
		return err
	}

	logger.Info("Booking status changed", "booking_id", bookingID,
		"from", domain.BookingStatusPending, "to", domain.BookingStatusConfirmed)
	s.noteSvc.Notify(ctx, booking.RenterID, "Booking Confirmed",
		"Your booking has been confirmed by the provider", map[string]string{
			"type":       "BOOKING_CONFIRMED",
			"booking_id": bookingID,
		})
	return nil
}

func (s *bookingService) ListByRenter(ctx context.Context, renterID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByRenter(ctx, renterID, status, page, pageSize)
}

func (s *bookingService) ListByProvider(ctx context.Context, providerID, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByProvider(ctx, providerID, status, page, pageSize)
}

func (s *bookingService) providerOf(ctx context.Context, booking *domain.Booking) (string, error) {
	if len(booking.Details) == 0 {
		return "", domain.E(domain.CodeNotFound, "booking has no vehicle details", domain.ErrNotFound)
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.Details[0].VehicleID)
	if err != nil {
		return "", err
	}
	return vehicle.ProviderID, nil
}

func newTxnCode() string {
	return "BOOK-" + strings.ToUpper(uuid.NewString()[:8])
}

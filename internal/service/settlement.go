package service

import (
	"context"
	"time"

	"rentride-backend/internal/domain"
	"rentride-backend/internal/logger"
	"rentride-backend/internal/repository"

	"github.com/google/uuid"
)

type settlementService struct {
	bookingRepo    repository.BookingRepository
	contractRepo   repository.ContractRepository
	settlementRepo repository.SettlementRepository
	walletRepo     repository.WalletRepository
	vehicleRepo    repository.VehicleRepository
	userRepo       repository.UserRepository
	noteSvc        NotificationService
	emailSvc       EmailService
}

func NewSettlementService(
	bookingRepo repository.BookingRepository,
	contractRepo repository.ContractRepository,
	settlementRepo repository.SettlementRepository,
	walletRepo repository.WalletRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
	emailSvc EmailService,
) SettlementService {
	return &settlementService{
		bookingRepo:    bookingRepo,
		contractRepo:   contractRepo,
		settlementRepo: settlementRepo,
		walletRepo:     walletRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		noteSvc:        noteSvc,
		emailSvc:       emailSvc,
	}
}

// OnPaymentConfirmed moves the booking from UNPAID to PENDING, opens the
// provider contract, and disarms the abandonment timer, all in one
// transaction. A booking already reclaimed or already paid surfaces an
// illegal-transition error and nothing is written.
func (s *settlementService) OnPaymentConfirmed(ctx context.Context, bookingID, txnRef string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	providerID, err := s.providerOf(ctx, booking)
	if err != nil {
		return err
	}

	contract := &domain.Contract{
		ID:                  uuid.NewString(),
		BookingID:           booking.ID,
		ProviderID:          providerID,
		Status:              domain.ContractStatusProcessing,
		CostSettlementCents: booking.TotalCents,
	}
	if err := s.settlementRepo.ConfirmPayment(ctx, booking.ID, txnRef, contract); err != nil {
		return err
	}

	logger.Info("Payment confirmed", "booking_id", booking.ID, "txn_ref", txnRef,
		"contract_id", contract.ID)

	s.noteSvc.Notify(ctx, booking.RenterID, "Payment Received",
		"Your payment was received; the booking awaits provider confirmation", map[string]string{
			"type":       "PAYMENT_CONFIRMED",
			"booking_id": booking.ID,
		})
	s.noteSvc.Notify(ctx, providerID, "Booking Paid",
		"A booking for your vehicle has been paid and awaits your confirmation", map[string]string{
			"type":       "BOOKING_PAID",
			"booking_id": booking.ID,
		})
	if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
		_ = s.emailSvc.SendPaymentConfirmed(ctx, renter.Email, booking.ID)
	}
	return nil
}

// OnDeliveryConfirmed records the provider handing the vehicle over:
// CONFIRMED to DELIVERED, and the contract starts RENTING.
func (s *settlementService) OnDeliveryConfirmed(ctx context.Context, providerID, bookingID string) error {
	contract, err := s.contractRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return err
	}
	if contract.ProviderID != providerID {
		return domain.E(domain.CodeForbidden, "contract belongs to another provider", domain.ErrForbidden)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusConfirmed, domain.BookingStatusDelivered); err != nil {
		return err
	}
	if err := s.contractRepo.UpdateStatus(ctx, contract.ID, domain.ContractStatusProcessing, domain.ContractStatusRenting); err != nil {
		return err
	}

	logger.Info("Booking status changed", "booking_id", bookingID,
		"from", domain.BookingStatusConfirmed, "to", domain.BookingStatusDelivered)
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err == nil {
		s.noteSvc.Notify(ctx, booking.RenterID, "Vehicle On The Way",
			"The provider has dispatched your vehicle", map[string]string{
				"type":       "BOOKING_DELIVERED",
				"booking_id": bookingID,
			})
	}
	return nil
}

// OnReceiptConfirmed records the renter taking possession: DELIVERED to
// RECEIVED_BY_CUSTOMER. Only the renter may confirm receipt.
func (s *settlementService) OnReceiptConfirmed(ctx context.Context, renterID, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.RenterID != renterID {
		return domain.E(domain.CodeForbidden, "booking belongs to another renter", domain.ErrForbidden)
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusDelivered, domain.BookingStatusReceivedByCustomer); err != nil {
		return err
	}
	logger.Info("Booking status changed", "booking_id", bookingID,
		"from", domain.BookingStatusDelivered, "to", domain.BookingStatusReceivedByCustomer)
	return nil
}

// OnReturnConfirmed closes the rental: the provider confirms the vehicle is
// back, and the booking completion, final contract, and provider payout
// commit as one unit. A failed attempt leaves no partial state, so the call
// can simply be repeated.
func (s *settlementService) OnReturnConfirmed(ctx context.Context, callerID, bookingID string, finalCostCents int64, note string) error {
	contract, err := s.contractRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return err
	}
	if contract.ProviderID != callerID {
		return domain.E(domain.CodeForbidden, "contract belongs to another provider", domain.ErrForbidden)
	}
	providerWallet, err := s.walletRepo.GetByUserID(ctx, contract.ProviderID)
	if err != nil {
		return err
	}

	if finalCostCents <= 0 {
		finalCostCents = contract.CostSettlementCents
	}
	final := &domain.FinalContract{
		ID:                  uuid.NewString(),
		ContractID:          contract.ID,
		TimeFinish:          time.Now(),
		CostSettlementCents: finalCostCents,
		Note:                note,
	}
	id := bookingID
	payout := &domain.WalletTransaction{
		ID:          uuid.NewString(),
		WalletID:    providerWallet.ID,
		AmountCents: finalCostCents,
		Type:        domain.WalletTxnTypePayout,
		Status:      domain.WalletTxnStatusApproved,
		BookingID:   &id,
		Note:        "settlement payout for booking " + bookingID,
	}
	if err := s.settlementRepo.FinalizeReturn(ctx, bookingID, final, payout); err != nil {
		if domain.CodeOf(err) != "" {
			return err
		}
		logger.Error("Return settlement rolled back", "booking_id", bookingID,
			"provider_id", contract.ProviderID, "amount_cents", finalCostCents, "error", err)
		return domain.E(domain.CodeSettlementFailed,
			"return settlement could not be committed; retry the confirmation", domain.ErrSettlementFailed)
	}

	logger.Info("Booking completed", "booking_id", bookingID,
		"contract_id", contract.ID, "settlement_cents", finalCostCents)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err == nil {
		s.noteSvc.Notify(ctx, booking.RenterID, "Booking Completed",
			"Your rental is complete, thank you", map[string]string{
				"type":       "BOOKING_COMPLETED",
				"booking_id": bookingID,
			})
		if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
			_ = s.emailSvc.SendBookingCompleted(ctx, renter.Email, bookingID, finalCostCents)
		}
	}
	s.noteSvc.Notify(ctx, contract.ProviderID, "Settlement Posted",
		"Your payout for the completed booking has been credited", map[string]string{
			"type":       "SETTLEMENT_POSTED",
			"booking_id": bookingID,
		})
	return nil
}

// OnCancelled aborts an UNPAID, PENDING, or CONFIRMED booking. Exactly one
// money branch runs for a paid booking: a penalty split when the renter
// cancels inside the minimum-cancel window, otherwise a full refund. An
// unpaid booking moves no money at all. Slot release, status change, wallet
// postings, and timer disarm commit as one unit.
func (s *settlementService) OnCancelled(ctx context.Context, bookingID, reason, initiatorID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	providerID, err := s.providerOf(ctx, booking)
	if err != nil {
		return err
	}
	if initiatorID != booking.RenterID && initiatorID != providerID {
		return domain.E(domain.CodeForbidden, "only the renter or the provider may cancel", domain.ErrForbidden)
	}
	if !booking.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return domain.E(domain.CodeIllegalTransition,
			"booking cannot be cancelled from "+string(booking.Status), domain.ErrIllegalTransition)
	}

	var (
		penaltyCents int64
		postings     []domain.WalletTransaction
	)
	if booking.Status != domain.BookingStatusUnpaid {
		if initiatorID == booking.RenterID && booking.PenaltyApplies(time.Now()) {
			penaltyCents = booking.PenaltyCents()
			if penaltyCents > booking.TotalCents {
				penaltyCents = booking.TotalCents
			}
		}
		renterWallet, err := s.walletRepo.GetByUserID(ctx, booking.RenterID)
		if err != nil {
			return err
		}
		id := booking.ID
		postings = append(postings, domain.WalletTransaction{
			ID:          uuid.NewString(),
			WalletID:    renterWallet.ID,
			AmountCents: booking.TotalCents - penaltyCents,
			Type:        domain.WalletTxnTypeRefund,
			Status:      domain.WalletTxnStatusApproved,
			BookingID:   &id,
			Note:        "refund for cancelled booking " + booking.ID,
		})
		if penaltyCents > 0 {
			providerWallet, err := s.walletRepo.GetByUserID(ctx, providerID)
			if err != nil {
				return err
			}
			postings = append(postings, domain.WalletTransaction{
				ID:          uuid.NewString(),
				WalletID:    providerWallet.ID,
				AmountCents: penaltyCents,
				Type:        domain.WalletTxnTypePenalty,
				Status:      domain.WalletTxnStatusApproved,
				BookingID:   &id,
				Note:        "late-cancellation penalty for booking " + booking.ID,
			})
		}
	}

	// The repository re-checks the status under lock against the one these
	// postings were priced for; a payment landing in between fails the
	// cancellation rather than swallowing the renter's money.
	if err := s.settlementRepo.CancelBooking(ctx, bookingID, booking.Status, penaltyCents, postings); err != nil {
		return err
	}

	logger.Info("Booking cancelled", "booking_id", bookingID, "initiator_id", initiatorID,
		"penalty_cents", penaltyCents, "reason", reason)

	s.noteSvc.Notify(ctx, booking.RenterID, "Booking Cancelled",
		"Booking was cancelled: "+reason, map[string]string{
			"type":       "BOOKING_CANCELLED",
			"booking_id": bookingID,
		})
	s.noteSvc.Notify(ctx, providerID, "Booking Cancelled",
		"Booking for your vehicle was cancelled: "+reason, map[string]string{
			"type":       "BOOKING_CANCELLED",
			"booking_id": bookingID,
		})
	if renter, err := s.userRepo.GetByID(ctx, booking.RenterID); err == nil {
		_ = s.emailSvc.SendBookingCancelled(ctx, renter.Email, bookingID, reason)
	}
	return nil
}

func (s *settlementService) providerOf(ctx context.Context, booking *domain.Booking) (string, error) {
	if len(booking.Details) == 0 {
		return "", domain.E(domain.CodeNotFound, "booking has no vehicle details", domain.ErrNotFound)
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.Details[0].VehicleID)
	if err != nil {
		return "", err
	}
	return vehicle.ProviderID, nil
}

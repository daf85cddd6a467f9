package domain

import "errors"

// Stable machine-readable error codes surfaced to API callers.
const (
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidWindow          = "INVALID_WINDOW"
	CodeSlotConflict           = "SLOT_CONFLICT"
	CodeRenterDoubleBooking    = "RENTER_DOUBLE_BOOKING"
	CodeIllegalTransition      = "ILLEGAL_TRANSITION"
	CodeCouponNotFound         = "COUPON_NOT_FOUND"
	CodeCouponExpired          = "COUPON_EXPIRED"
	CodeDuplicateFinalContract = "DUPLICATE_FINAL_CONTRACT"
	CodeSettlementFailed       = "SETTLEMENT_FAILED"
	CodeInsufficientBalance    = "INSUFFICIENT_BALANCE"
	CodeVehicleUnavailable     = "VEHICLE_UNAVAILABLE"
	CodeRenterInactive         = "RENTER_INACTIVE"
	CodeForbidden              = "FORBIDDEN"
	CodeInvalidRequest         = "INVALID_REQUEST"
)

// Sentinels for errors.Is checks across layers.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidWindow          = errors.New("invalid booking window")
	ErrSlotConflict           = errors.New("slot conflict")
	ErrRenterDoubleBooking    = errors.New("renter already holds an overlapping booking")
	ErrIllegalTransition      = errors.New("illegal status transition")
	ErrCouponNotFound         = errors.New("coupon not found")
	ErrCouponExpired          = errors.New("coupon expired")
	ErrDuplicateFinalContract = errors.New("final contract already exists")
	ErrSettlementFailed       = errors.New("settlement failed")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrVehicleUnavailable     = errors.New("vehicle unavailable")
	ErrRenterInactive         = errors.New("renter inactive")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidRequest         = errors.New("invalid request")
)

// Error carries a stable code plus a human message. The message never leaks
// another renter's identifiers; slot conflicts report only the interval.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a coded error wrapping its sentinel.
func E(code, message string, sentinel error) *Error {
	return &Error{Code: code, Message: message, Err: sentinel}
}

// CodeOf extracts the machine-readable code, falling back to matching
// sentinels for errors produced without a wrapper.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrSlotConflict):
		return CodeSlotConflict
	case errors.Is(err, ErrIllegalTransition):
		return CodeIllegalTransition
	}
	return ""
}

package cancel_booking

import "errors"

var (
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")
	ErrAccessDenied    = errors.New("cancel_booking: only the rider can cancel the booking")
	ErrCannotCancel    = errors.New("cancel_booking: booking cannot be cancelled")
	ErrInvalidInput    = errors.New("cancel_booking: invalid input data")
	ErrInternal        = errors.New("cancel_booking: internal error")
)

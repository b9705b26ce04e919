package booking

import "errors"

var (
	// Form failures.
	ErrMissingPayment = errors.New("no payment method selected")
	ErrMissingFields  = errors.New("required fields are missing")
	ErrUnknownService = errors.New("unknown service")

	// Slot failures, in check order.
	ErrInvalidDateTime = errors.New("invalid date or time")
	ErrPastDateTime    = errors.New("date and time are in the past")
	ErrClosedDay       = errors.New("closed on that weekday")
	ErrOutsideHours    = errors.New("outside operating hours")
)

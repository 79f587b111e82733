package domain

import "errors"

var (
	ErrUnauthenticated          = errors.New("unauthenticated")
	ErrInvalidServiceSelection  = errors.New("invalid service selection")
	ErrSlotUnavailable          = errors.New("slot unavailable")
	ErrNotFound                 = errors.New("venue or service not found")
	ErrForbidden                = errors.New("authorization denied")
	ErrStorage                  = errors.New("storage failure")
	ErrValidation               = errors.New("validation error")
	ErrServiceHasFutureBookings = errors.New("service has future bookings")
	ErrAlreadyVenueAdmin        = errors.New("user already administers venue")
)

// ValidationError carries per-field validation failures and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

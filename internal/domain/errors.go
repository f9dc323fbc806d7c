package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the target booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrInvalidDate: input did not parse as a DD-MM-YYYY calendar date.
	ErrInvalidDate = errors.New("invalid date format")
)

// PaymentError wraps any gateway decline or transport fault. Handlers map
// it to a deliberately non-specific response; the cause stays in the logs.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return fmt.Sprintf("payment: %v", e.Err) }
func (e *PaymentError) Unwrap() error { return e.Err }

func IsPaymentError(err error) bool {
	var pe *PaymentError
	return errors.As(err, &pe)
}

package domain

import "context"

// BookingStore is implemented by both persistence backends. The two
// implementations must be externally indistinguishable: same errors for
// the same situations, same payload shapes out of the read paths.
type BookingStore interface {
	// Create persists a new booking and returns the assigned id.
	// Field completeness is the caller's responsibility.
	Create(ctx context.Context, f Fields) (string, error)

	// Read paths. Order is whatever the store yields; each call re-reads
	// current state.
	ListBookedDateRanges(ctx context.Context) ([]DateRange, error)
	ListAll(ctx context.Context) ([]Booking, error)

	// Update overwrites the supplied fields only. Returns ErrNotFound when
	// id does not match an existing booking. The caller guarantees a
	// non-empty patch.
	Update(ctx context.Context, id string, p Patch) error

	// Delete removes the booking irrevocably; ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// PaymentGateway captures a charge against a card token. Single attempt,
// no retries: on error the caller must not assume a partial charge.
type PaymentGateway interface {
	Capture(ctx context.Context, req CaptureRequest) (Charge, error)
}

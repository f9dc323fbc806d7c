package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"casarural/internal/domain"
)

// BookingInput carries a full seven-field booking as received at the HTTP
// boundary: dates still in DD-MM-YYYY form. Presence checks happen in the
// handler; this layer normalizes and persists.
type BookingInput struct {
	Name    string
	Email   string
	Phone   string
	Guests  int
	DateIn  string
	DateOut string
	Price   float64
}

type BookingService struct {
	store    domain.BookingStore
	gateway  domain.PaymentGateway
	currency string
}

func NewBookingService(store domain.BookingStore, gw domain.PaymentGateway, currency string) *BookingService {
	return &BookingService{store: store, gateway: gw, currency: currency}
}

// Create normalizes both dates and persists the booking.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (string, error) {
	f, err := s.toFields(in)
	if err != nil {
		return "", err
	}
	return s.store.Create(ctx, f)
}

func (s *BookingService) ListBookedDates(ctx context.Context) ([]domain.DateRange, error) {
	return s.store.ListBookedDateRanges(ctx)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.store.ListAll(ctx)
}

// Update normalizes any dates present in the patch and applies it.
// The caller guarantees a non-empty patch.
func (s *BookingService) Update(ctx context.Context, id string, p domain.Patch) error {
	if p.DateIn != nil {
		d, err := NormalizeDate(*p.DateIn)
		if err != nil {
			return err
		}
		p.DateIn = &d
	}
	if p.DateOut != nil {
		d, err := NormalizeDate(*p.DateOut)
		if err != nil {
			return err
		}
		p.DateOut = &d
	}
	return s.store.Update(ctx, id, p)
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// CreateWithPayment captures the charge first, then persists the booking.
// Everything up to and including the capture surfaces as a PaymentError so
// the handler can keep the client-facing message generic. A store failure
// after a successful capture leaves the charge uncompensated; it is logged
// with the charge id for manual reconciliation.
func (s *BookingService) CreateWithPayment(ctx context.Context, in BookingInput, token string) (string, error) {
	if s.gateway == nil {
		return "", &domain.PaymentError{Err: errors.New("payment gateway not configured")}
	}
	f, err := s.toFields(in)
	if err != nil {
		return "", &domain.PaymentError{Err: err}
	}

	desc := fmt.Sprintf("Booking: %s, Email: %s, Phone: %s, Guests: %d, Price: €%v, Check-in: %s, Check-out: %s",
		in.Name, in.Email, in.Phone, in.Guests, in.Price, in.DateIn, in.DateOut)

	ch, err := s.gateway.Capture(ctx, domain.CaptureRequest{
		Amount:      int64(math.Round(in.Price * 100)),
		Currency:    s.currency,
		Description: desc,
		SourceToken: token,
	})
	if err != nil {
		return "", &domain.PaymentError{Err: err}
	}

	id, err := s.store.Create(ctx, f)
	if err != nil {
		log.Error().
			Str("charge_id", ch.ID).
			Int64("amount", ch.Amount).
			Str("currency", ch.Currency).
			Err(err).
			Msg("booking write failed after successful capture; charge needs manual reconciliation")
		return "", err
	}
	return id, nil
}

func (s *BookingService) toFields(in BookingInput) (domain.Fields, error) {
	dateIn, err := NormalizeDate(in.DateIn)
	if err != nil {
		return domain.Fields{}, err
	}
	dateOut, err := NormalizeDate(in.DateOut)
	if err != nil {
		return domain.Fields{}, err
	}
	return domain.Fields{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Guests:  in.Guests,
		DateIn:  dateIn,
		DateOut: dateOut,
		Price:   in.Price,
	}, nil
}

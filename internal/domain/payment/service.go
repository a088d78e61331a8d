package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/docport/docport/internal/platform/payments"
)

// BookingMarker flips a booking to paid. Satisfied by the booking
// repository so both writes can share one transaction.
type BookingMarker interface {
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) error
}

// TxRunner runs fn atomically; both the payment insert and the booking
// update either land or neither does.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	payments Repository
	bookings BookingMarker
	gateway  payments.Gateway
	currency string
	tx       TxRunner
}

func NewService(repo Repository, bookings BookingMarker, gateway payments.Gateway, currency string, tx TxRunner) *Service {
	return &Service{payments: repo, bookings: bookings, gateway: gateway, currency: currency, tx: tx}
}

// MinorUnits converts a price in decimal currency units to the gateway's
// integer minor-unit representation.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent requests a card payment intent for the price and returns
// the gateway's client secret verbatim.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("price must be positive")
	}
	intent, err := s.gateway.CreateCardIntent(ctx, MinorUnits(price), s.currency)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// Record stores the payment and marks the booking paid in one
// transaction, payment first.
func (s *Service) Record(ctx context.Context, p *Payment) error {
	if p.BookingID == uuid.Nil {
		return fmt.Errorf("bookingId is required")
	}
	if p.TransactionID == "" {
		return fmt.Errorf("transactionId is required")
	}

	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, p); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		if err := s.bookings.MarkPaid(ctx, p.BookingID, p.TransactionID); err != nil {
			return fmt.Errorf("mark booking paid: %w", err)
		}
		return nil
	})
}

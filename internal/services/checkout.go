package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"zenmarket/internal/models"
)

const (
	DefaultServiceFee      = 45
	DefaultProcessingDelay = 2 * time.Second
)

// CheckoutSimulator turns a cart into confirmed bookings. Nothing is charged.
type CheckoutSimulator struct {
	serviceFee int
	delay      time.Duration
	logger     *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCheckoutSimulator(serviceFee int, delay time.Duration, rng *rand.Rand, logger *slog.Logger) *CheckoutSimulator {
	if serviceFee < 0 {
		serviceFee = DefaultServiceFee
	}
	if delay < 0 {
		delay = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutSimulator{serviceFee: serviceFee, delay: delay, rng: rng, logger: logger}
}

// ServiceFee is the flat fee added to a non-empty cart
func (s *CheckoutSimulator) ServiceFee() int {
	return s.serviceFee
}

// Checkout waits out the simulated processing delay, confirms one booking per
// cart item and removes the booked items. Items added while payment is
// processing stay in the cart. A cancelled context leaves the cart untouched.
func (s *CheckoutSimulator) Checkout(ctx context.Context, cart *CartStore, form models.CheckoutRequest) (*models.BookingConfirmation, error) {
	summary := cart.Summary(s.serviceFee)
	if summary.TotalItems == 0 {
		return nil, models.ErrEmptyCart
	}

	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("checkout interrupted: %w", err)
	}

	confirmation := &models.BookingConfirmation{
		BookingIDs: make([]string, 0, len(summary.Items)),
		Bookings:   make([]models.Booking, 0, len(summary.Items)),
		Subtotal:   summary.Subtotal,
		ServiceFee: summary.ServiceFee,
		Total:      summary.Total,
	}

	booked := make([]string, 0, len(summary.Items))
	for _, item := range summary.Items {
		booked = append(booked, item.ID)
		booking := models.Booking{
			ID:          s.newBookingID(),
			RetreatID:   item.Retreat.ID,
			UserID:      models.MockUser.ID,
			Date:        item.SelectedDate,
			Status:      models.BookingConfirmed,
			TotalAmount: item.Subtotal(),
			GuestCount:  item.Guests,
		}
		confirmation.Bookings = append(confirmation.Bookings, booking)
		confirmation.BookingIDs = append(confirmation.BookingIDs, booking.ID)
	}

	if err := cart.RemoveItems(context.WithoutCancel(ctx), booked); err != nil {
		s.logger.Warn("bookings confirmed but cart update was not saved", "error", err)
	}

	s.logger.Info("checkout completed",
		"bookings", len(confirmation.Bookings),
		"total", confirmation.Total,
		"email", form.Email,
	)
	return confirmation, nil
}

func (s *CheckoutSimulator) wait(ctx context.Context) error {
	if s.delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newBookingID returns ZM- followed by a number in 10000..99999
func (s *CheckoutSimulator) newBookingID() string {
	s.mu.Lock()
	n := 10000 + s.rng.IntN(90000)
	s.mu.Unlock()
	return fmt.Sprintf("ZM-%d", n)
}

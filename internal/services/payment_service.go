package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentProcessor creates payment intents at an external processor and returns their client secret.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// PaymentService turns an order total into a processor payment intent.
type PaymentService struct {
	processor PaymentProcessor
	currency  string
}

// NewPaymentService creates a new PaymentService. A nil processor makes every request fail with ErrUnavailable.
func NewPaymentService(processor PaymentProcessor, currency string) *PaymentService {
	return &PaymentService{processor: processor, currency: currency}
}

// CreatePaymentIntent charges total, given in major units, in the configured currency.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, total float64) (string, error) {
	if total <= 0 {
		return "", fmt.Errorf("%w: total must be greater than zero", ErrValidation)
	}
	if s.processor == nil {
		return "", fmt.Errorf("%w: payment processor is not configured", ErrUnavailable)
	}

	amount := MinorUnits(total)
	if amount <= 0 {
		return "", fmt.Errorf("%w: total is below the smallest chargeable amount", ErrValidation)
	}
	secret, err := s.processor.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return secret, nil
}

// MinorUnits converts an amount in major units (e.g. 12.5 SAR) to minor units (1250 halalas).
func MinorUnits(total float64) int64 {
	return decimal.NewFromFloat(total).Shift(2).Round(0).IntPart()
}

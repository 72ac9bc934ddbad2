package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// Bridge creates payment intents with the payment provider. amount is in
// major units.
type Bridge interface {
	Create(ctx context.Context, amount int64, currency, receiptID string) (string, error)
}

type StripeService struct {
	SecretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SecretKey: secretKey}
}

func (s *StripeService) Create(ctx context.Context, amount int64, currency, receiptID string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("payment amount must be positive, got %d", amount)
	}
	if amount > math.MaxInt64/100 {
		return "", fmt.Errorf("payment amount %d is out of range", amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount * 100),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	params.AddMetadata("receipt_id", receiptID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create payment intent: %w", err)
	}
	return pi.ID, nil
}

// LocalBridge issues intent ids without calling out. Used when no Stripe key
// is configured.
type LocalBridge struct{}

func (LocalBridge) Create(_ context.Context, amount int64, _ string, _ string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("payment amount must be positive, got %d", amount)
	}
	return "pi_local_" + strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

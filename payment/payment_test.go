package payment

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("topsecret")
	sig := s.Sign("pi_123", "pay_456")

	assert.Len(t, sig, 64)
	assert.True(t, s.Verify("pi_123", "pay_456", sig))
	assert.True(t, s.Verify("pi_123", "pay_456", strings.ToUpper(sig)))
}

func TestSigner_Rejects(t *testing.T) {
	s := NewSigner("topsecret")
	sig := s.Sign("pi_123", "pay_456")

	tests := []struct {
		name           string
		signer         *Signer
		intent, confID string
		sig            string
	}{
		{"other confirmation", s, "pi_123", "pay_789", sig},
		{"other intent", s, "pi_999", "pay_456", sig},
		{"empty signature", s, "pi_123", "pay_456", ""},
		{"garbage", s, "pi_123", "pay_456", "not-hex"},
		{"other secret", NewSigner("different"), "pi_123", "pay_456", sig},
		{"no secret", NewSigner(""), "pi_123", "pay_456", NewSigner("").Sign("pi_123", "pay_456")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.signer.Verify(tt.intent, tt.confID, tt.sig))
		})
	}
}

func TestLocalBridge(t *testing.T) {
	id, err := LocalBridge{}.Create(context.Background(), 249, "INR", "rcpt_1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "pi_local_"))

	_, err = LocalBridge{}.Create(context.Background(), 0, "INR", "rcpt_1")
	assert.Error(t, err)
}

func TestStripeService_RejectsNonPositiveAmount(t *testing.T) {
	_, err := NewStripeService("sk_test_x").Create(context.Background(), 0, "inr", "rcpt_1")
	assert.Error(t, err)
}

func TestStripeService_RejectsAmountThatOverflowsMinorUnits(t *testing.T) {
	_, err := NewStripeService("sk_test_x").Create(context.Background(), math.MaxInt64/100+1, "inr", "rcpt_1")
	assert.Error(t, err)
}

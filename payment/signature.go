package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Signer computes and checks the confirmation signature the payment widget
// returns after a successful payment.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns hex(HMAC-SHA256(secret, intentID|confirmationID)).
func (s *Signer) Sign(intentID, confirmationID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(intentID + "|" + confirmationID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Signer) Verify(intentID, confirmationID, signature string) bool {
	if len(s.secret) == 0 || signature == "" {
		return false
	}
	expected := s.Sign(intentID, confirmationID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}

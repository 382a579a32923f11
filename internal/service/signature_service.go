package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSigner computes HMAC-SHA256 digests under a fixed key.
// It tokenizes card numbers and authenticates webhook bodies.
type HMACSigner struct {
	key []byte
}

// NewHMACSigner creates a signer for key.
func NewHMACSigner(key string) *HMACSigner {
	return &HMACSigner{key: []byte(key)}
}

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func (s *HMACSigner) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against payload in constant time.
func (s *HMACSigner) Verify(payload []byte, signature string) bool {
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Token implements ports.Tokenizer. The card number itself is never stored.
func (s *HMACSigner) Token(cardNumber string) string {
	return s.Sign([]byte(cardNumber))
}

package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := CreateTransactionRequest{
		TokenID:  "  tok-1  ",
		Currency: " usd ",
		Amount:   500,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "tok-1", req.TokenID)
	assert.Equal(t, "usd", req.Currency)
	assert.Equal(t, int64(500), req.Amount)
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	status := "  pending  "
	q := StatusQuery{Status: &status}
	SanitizeStruct(&q)

	assert.Equal(t, "pending", *q.Status)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	q := StatusQuery{}
	SanitizeStruct(&q)
	assert.Nil(t, q.Status)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"ref-001",
		"REF_002",
		"a.b.c",
		"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"ref 001",
		"ref<001>",
		"ref;DROP",
		"",
		"ref\n001",
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestCreateWalletRequest_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateWalletRequest
		ok   bool
	}{
		{"valid", CreateWalletRequest{CardNumber: "4111111111111111", Currency: "USD", Balance: 100}, true},
		{"lowercase currency", CreateWalletRequest{CardNumber: "4111111111111111", Currency: "eur"}, true},
		{"short card", CreateWalletRequest{CardNumber: "411111111111", Currency: "USD"}, false},
		{"non numeric card", CreateWalletRequest{CardNumber: "4111-1111-1111-1", Currency: "USD"}, false},
		{"unknown currency", CreateWalletRequest{CardNumber: "4111111111111111", Currency: "JPY"}, false},
		{"negative balance", CreateWalletRequest{CardNumber: "4111111111111111", Currency: "USD", Balance: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestWebhookRequest_Validation(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&WebhookRequest{ID: 7, Status: "completed"}))
	assert.Error(t, binding.Validator.ValidateStruct(&WebhookRequest{ID: 7, Status: "SETTLED"}))
	assert.Error(t, binding.Validator.ValidateStruct(&WebhookRequest{Status: "COMPLETED"}))
	assert.Error(t, binding.Validator.ValidateStruct(&WebhookRequest{ID: 7, Status: "FAILED", Currency: "XXX"}))
}

func TestStatusQuery_Validation(t *testing.T) {
	pending := "pending"
	bogus := "done"
	assert.NoError(t, binding.Validator.ValidateStruct(&StatusQuery{}))
	assert.NoError(t, binding.Validator.ValidateStruct(&StatusQuery{Status: &pending}))
	assert.Error(t, binding.Validator.ValidateStruct(&StatusQuery{Status: &bogus}))
}

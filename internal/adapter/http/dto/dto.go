package dto

import "time"

// --- Wallet DTOs ---

// CreateWalletRequest is the body for POST /wallet.
type CreateWalletRequest struct {
	CardNumber string `json:"cardNumber" binding:"required,len=16,numeric"`
	Currency   string `json:"currency" binding:"required,currency"`
	Balance    int64  `json:"balance" binding:"gte=0"`
}

// UpdateBalanceRequest is the body for PATCH /wallet/update. Amount is a
// signed delta in minor units. Unknown fields such as currency are ignored.
type UpdateBalanceRequest struct {
	TokenID string `json:"tokenId" binding:"required,safe_id"`
	Amount  int64  `json:"amount" binding:"required"`
}

// ExchangeQuery holds the query parameters of PATCH /wallet/exchange.
type ExchangeQuery struct {
	TokenID        string `form:"tokenId" binding:"required,safe_id"`
	TargetCurrency string `form:"targetCurrency" binding:"required,currency"`
}

// TokenResponse is returned after wallet creation.
type TokenResponse struct {
	TokenID string `json:"tokenId"`
}

// --- Transaction DTOs ---

// CreateTransactionRequest is the body for POST /transaction. The sign of
// Amount selects deposit or withdrawal.
type CreateTransactionRequest struct {
	TokenID               string     `json:"tokenId" binding:"required,safe_id"`
	Currency              string     `json:"currency" binding:"required,currency"`
	Amount                int64      `json:"amount"`
	ClientTransactionDate *time.Time `json:"clientTransactionDate"`
}

// StatusQuery filters GET /transaction/complete/:walletId.
type StatusQuery struct {
	Status *string `form:"status" binding:"omitempty,tx_status"`
}

// WebhookRequest is a settlement verdict pushed by the gateway.
type WebhookRequest struct {
	ID              int64      `json:"id" binding:"required,gt=0"`
	Status          string     `json:"status" binding:"required,tx_status"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency" binding:"omitempty,currency"`
	OriginCreatedAt *time.Time `json:"originCreatedAt"`
}

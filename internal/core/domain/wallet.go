package domain

import "time"

// Wallet holds a single-currency balance identified by an opaque token.
type Wallet struct {
	ID        int64     `json:"id"`
	TokenID   string    `json:"tokenId"`
	Balance   int64     `json:"balance"` // In minor units of Currency
	Currency  Currency  `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FundsInWallet reports a balance mutation, real or prospective.
type FundsInWallet struct {
	TokenID        string   `json:"tokenId"`
	OldBalance     int64    `json:"oldBalance"`
	CurrentBalance int64    `json:"currentBalance"`
	Currency       Currency `json:"currency"`
}

package domain

import (
	"strings"
	"time"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeExchange   TransactionType = "EXCHANGE"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusGateway   TransactionStatus = "GATEWAY"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// transitions lists the statuses reachable from each non-terminal status.
var transitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending: {
		TransactionStatusGateway,
		TransactionStatusCompleted,
		TransactionStatusFailed,
		TransactionStatusCancelled,
	},
	TransactionStatusGateway: {
		TransactionStatusCompleted,
		TransactionStatusFailed,
	},
}

// ParseTransactionStatus accepts a case-insensitive status name.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	st := TransactionStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidTransactionStatus
	}
	return st, nil
}

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusGateway, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further status update is accepted.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted ||
		s == TransactionStatusFailed ||
		s == TransactionStatusCancelled
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to TransactionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether a user may cancel a transaction in status s.
// Cancellation is allowed from any non-terminal status, including GATEWAY.
func CanCancel(s TransactionStatus) bool {
	return s.Valid() && !s.IsTerminal()
}

// Classify derives the transaction type from the wallet currency, the
// requested currency and the signed amount.
func Classify(walletCurrency, target Currency, amount int64) (TransactionType, error) {
	if walletCurrency != target {
		if amount != 0 {
			return "", ErrExchangeWithAmount
		}
		return TransactionTypeExchange, nil
	}
	switch {
	case amount > 0:
		return TransactionTypeDeposit, nil
	case amount < 0:
		return TransactionTypeWithdrawal, nil
	default:
		return "", ErrNoOpTransaction
	}
}

// InitialStatus returns the status a new transaction of type t is created in.
func InitialStatus(t TransactionType) TransactionStatus {
	if t == TransactionTypeExchange {
		return TransactionStatusCompleted
	}
	return TransactionStatusPending
}

// Transaction is a requested or executed change to a wallet balance.
type Transaction struct {
	ID                    int64             `json:"id"`
	WalletID              int64             `json:"walletId"`
	Type                  TransactionType   `json:"type"`
	Status                TransactionStatus `json:"status"`
	OriginCurrency        Currency          `json:"originCurrency"`
	CurrentCurrency       Currency          `json:"currentCurrency"`
	Amount                int64             `json:"amount"` // Signed, in minor units
	ClientTransactionDate *time.Time        `json:"clientTransactionDate,omitempty"`
	IdempotencyKey        *string           `json:"idempotencyKey,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status.IsTerminal()
}

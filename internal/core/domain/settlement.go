package domain

import "time"

// SettlementMessage is the payload exchanged with the settlement gateway,
// both on outbound requests and inbound verdicts.
type SettlementMessage struct {
	ID              int64             `json:"id"`
	Status          TransactionStatus `json:"status"`
	Amount          int64             `json:"amount"`
	Currency        Currency          `json:"currency"`
	OriginCreatedAt time.Time         `json:"originCreatedAt"`
}

// NewSettlementMessage builds the outbound payload for t with the given status.
// OriginCreatedAt is the client-supplied date when present, else the creation time.
func NewSettlementMessage(t *Transaction, status TransactionStatus) SettlementMessage {
	origin := t.CreatedAt
	if t.ClientTransactionDate != nil {
		origin = *t.ClientTransactionDate
	}
	return SettlementMessage{
		ID:              t.ID,
		Status:          status,
		Amount:          t.Amount,
		Currency:        t.CurrentCurrency,
		OriginCreatedAt: origin,
	}
}

// GatewayVerdict is the synchronous gateway's decision on a transaction.
type GatewayVerdict struct {
	TransactionID int64
	Status        TransactionStatus
}

// SettlementResult is one item of a completion batch or an external update.
type SettlementResult struct {
	TransactionID int64             `json:"transactionId"`
	Status        TransactionStatus `json:"transactionStatus"`
	Funds         *FundsInWallet    `json:"funds"`
	Reason        string            `json:"reason,omitempty"`
}

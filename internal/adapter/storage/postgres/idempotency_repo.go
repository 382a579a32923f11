package postgres

import (
	"context"

	"wallet-settlement/internal/core/domain"
)

// FindByIdempotency looks up the transaction accepted for an idempotency triple.
// A nil client date matches only rows stored without one.
func (r *TransactionRepo) FindByIdempotency(ctx context.Context, triple domain.IdempotencyTriple) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumnList + ` FROM transactions
		WHERE idempotency_key = $1
		AND client_transaction_date IS NOT DISTINCT FROM $2
		AND amount = $3
		LIMIT 1`

	return scanTransaction(r.pool.QueryRow(ctx, query, triple.Key, triple.ClientDate, triple.Amount))
}

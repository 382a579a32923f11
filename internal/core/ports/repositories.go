package ports

import (
	"context"

	"wallet-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
// Lookups return (nil, nil) when no row matches.
type WalletRepository interface {
	// Create inserts w and sets its ID. Returns domain.ErrDuplicateToken on token collision.
	Create(ctx context.Context, w *domain.Wallet) error
	List(ctx context.Context) ([]domain.Wallet, error)
	GetByID(ctx context.Context, id int64) (*domain.Wallet, error)
	GetByTokenID(ctx context.Context, tokenID string) (*domain.Wallet, error)
	GetByTokenIDForUpdate(ctx context.Context, tx pgx.Tx, tokenID string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id int64, balance int64, currency domain.Currency) error
	// Delete removes the wallet and reports whether it existed.
	// Returns domain.ErrWalletInUse when transactions reference it.
	Delete(ctx context.Context, tokenID string) (bool, error)
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	// Create inserts t and sets ID and timestamps. Returns
	// domain.ErrDuplicateIdempotencyKey when the idempotency triple is taken.
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status domain.TransactionStatus) error
	// ListByWallet returns the wallet's transactions oldest first, optionally filtered by status.
	ListByWallet(ctx context.Context, walletID int64, status *domain.TransactionStatus) ([]domain.Transaction, error)
	FindByIdempotency(ctx context.Context, triple domain.IdempotencyTriple) (*domain.Transaction, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const walletColumnList = `id, token_id, balance, currency, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet and fills in its generated ID and timestamps.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (token_id, balance, currency)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, w.TokenID, w.Balance, w.Currency).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return domain.ErrDuplicateToken
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// List returns every wallet ordered by ID.
func (r *WalletRepo) List(ctx context.Context) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumnList + ` FROM wallets ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w := domain.Wallet{}
		if err := rows.Scan(&w.ID, &w.TokenID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// GetByID fetches a wallet by its identity (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumnList + ` FROM wallets WHERE id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, id), "get wallet by id")
}

// GetByTokenID fetches a wallet by its token (without locking).
func (r *WalletRepo) GetByTokenID(ctx context.Context, tokenID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumnList + ` FROM wallets WHERE token_id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, tokenID), "get wallet by token")
}

// GetByTokenIDForUpdate fetches a wallet by token with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByTokenIDForUpdate(ctx context.Context, tx pgx.Tx, tokenID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumnList + ` FROM wallets WHERE token_id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, tokenID), "get wallet for update by token")
}

// UpdateBalance sets a wallet's balance and currency within a transaction.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id int64, balance int64, currency domain.Currency) error {
	query := `UPDATE wallets SET balance = $1, currency = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, balance, currency, id)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %d", id)
	}
	return nil
}

// Delete removes a wallet by token. Wallets referenced by transactions are kept.
func (r *WalletRepo) Delete(ctx context.Context, tokenID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wallets WHERE token_id = $1`, tokenID)
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return false, domain.ErrWalletInUse
		}
		return false, fmt.Errorf("delete wallet: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanWallet(row pgx.Row, op string) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(&w.ID, &w.TokenID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

package ports

import (
	"context"
	"time"

	"wallet-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// ExchangeRateClient fetches spot rates from the external provider.
type ExchangeRateClient interface {
	GetRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error)
}

// SettlementChannel obtains an external verdict on a transaction.
// Synchronous channels return the verdict; asynchronous channels return nil
// and deliver the verdict later through the response path.
type SettlementChannel interface {
	Name() string
	Async() bool
	RequestConfirmation(ctx context.Context, msg domain.SettlementMessage) (*domain.GatewayVerdict, error)
}

// IdempotencyCache is the fast-path claim for idempotency triples.
type IdempotencyCache interface {
	// Claim atomically records key and reports whether it was new.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RateLimitStore manages fixed-window request counters.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// Tokenizer derives the opaque wallet token from a card number.
type Tokenizer interface {
	Token(cardNumber string) string
}

// SignatureVerifier authenticates inbound webhook payloads.
type SignatureVerifier interface {
	Verify(payload []byte, signature string) bool
}

// MetricsRecorder receives lifecycle events for instrumentation.
type MetricsRecorder interface {
	ObserveTransition(from, to domain.TransactionStatus)
	ObserveSettlement(channel, outcome string)
}

// --- Service Ports (Business Logic) ---

// WalletService owns wallet balances. It is the only component that mutates them.
type WalletService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	Resolve(ctx context.Context, tokenID string) (*domain.Wallet, error)
	ResolveByID(ctx context.Context, id int64) (*domain.Wallet, error)
	// ResolveForUpdate is Resolve holding the wallet row lock until tx ends.
	ResolveForUpdate(ctx context.Context, tx pgx.Tx, tokenID string) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, tokenID string) error
	ApplyDelta(ctx context.Context, tokenID string, delta int64, currency *domain.Currency) (*domain.FundsInWallet, error)
	// ApplyDeltaTx is ApplyDelta inside a caller-owned database transaction.
	ApplyDeltaTx(ctx context.Context, tx pgx.Tx, tokenID string, delta int64, currency *domain.Currency) (*domain.FundsInWallet, error)
	Exchange(ctx context.Context, tokenID string, target domain.Currency) (*domain.ExchangeAttempt, error)
	// ApplyExchangeTx converts the locked wallet balance at attempt's rate and
	// moves the wallet to attempt's currency.
	ApplyExchangeTx(ctx context.Context, tx pgx.Tx, tokenID string, attempt *domain.ExchangeAttempt) (*domain.FundsInWallet, error)
}

// CreateWalletRequest holds validated input for wallet creation.
type CreateWalletRequest struct {
	CardNumber string
	Currency   domain.Currency
	Balance    int64
}

// TransactionService owns the transaction state machine.
type TransactionService interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*domain.FundsInWallet, error)
	Complete(ctx context.Context, walletID int64, filter domain.TransactionStatus) ([]domain.SettlementResult, error)
	Dispatch(ctx context.Context, transactionID int64) (*domain.SettlementResult, error)
	Cancel(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	ApplyExternalUpdate(ctx context.Context, transactionID int64, status domain.TransactionStatus) (*domain.SettlementResult, error)
	ListTransactions(ctx context.Context, walletID int64, status *domain.TransactionStatus) ([]domain.Transaction, error)
}

// CreateTransactionRequest holds validated input for transaction creation.
type CreateTransactionRequest struct {
	TokenID        string
	TargetCurrency domain.Currency
	Amount         int64
	ClientDate     *time.Time
	IdempotencyKey *string
}

package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"wallet-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ErrForeignTx is returned when a transaction handle from another backend is used.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

// Store is an in-process wallet and transaction store. Row locks taken through
// the *ForUpdate methods are held until the owning Tx commits or rolls back.
type Store struct {
	mu           sync.RWMutex
	wallets      map[int64]*row[domain.Wallet]
	tokens       map[string]int64
	transactions map[int64]*row[domain.Transaction]
	nextWalletID int64
	nextTxID     int64
	locks        *rowLocks
	now          func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		wallets:      make(map[int64]*row[domain.Wallet]),
		tokens:       make(map[string]int64),
		transactions: make(map[int64]*row[domain.Transaction]),
		locks:        newRowLocks(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Wallets returns the store's ports.WalletRepository.
func (s *Store) Wallets() *WalletRepo {
	return &WalletRepo{s: s}
}

// Transactions returns the store's ports.TransactionRepository.
func (s *Store) Transactions() *TransactionRepo {
	return &TransactionRepo{s: s}
}

// Begin implements ports.DBTransactor.
func (s *Store) Begin(_ context.Context) (pgx.Tx, error) {
	return &Tx{store: s, held: make(map[string]struct{})}, nil
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(_ context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

func (s *Store) txFor(tx pgx.Tx) (*Tx, error) {
	mt, ok := tx.(*Tx)
	if !ok || mt.store != s {
		return nil, ErrForeignTx
	}
	if mt.closed {
		return nil, pgx.ErrTxClosed
	}
	return mt, nil
}

// Tx is the store's pgx.Tx. Only Commit and Rollback are supported; the
// embedded interface is nil and panics on any other call.
//
// Writes are staged on their rows and become visible to non-locking reads
// only when the Tx commits, matching postgres read committed.
type Tx struct {
	pgx.Tx
	store    *Store
	held     map[string]struct{}
	onFinish []func(commit bool)
	closed   bool
}

// Commit publishes every write made in the transaction and releases its row locks.
func (t *Tx) Commit(_ context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.finish(true)
	return nil
}

// Rollback discards every write made in the transaction and releases its row locks.
func (t *Tx) Rollback(_ context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.finish(false)
	return nil
}

func (t *Tx) finish(commit bool) {
	t.store.mu.Lock()
	for i := len(t.onFinish) - 1; i >= 0; i-- {
		t.onFinish[i](commit)
	}
	t.store.mu.Unlock()

	t.closed = true
	t.onFinish = nil
	for key := range t.held {
		t.store.locks.release(key)
	}
	t.held = nil
}

func (t *Tx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	if err := t.store.locks.acquire(ctx, key); err != nil {
		return err
	}
	t.held[key] = struct{}{}
	return nil
}

// errRowBusy is returned when a row already carries another open Tx's write.
var errRowBusy = errors.New("memory: row has an uncommitted write from another transaction")

// row holds the committed image of a record and, while a Tx is writing it,
// that Tx's staged image. committed is nil until the inserting Tx commits.
type row[T any] struct {
	committed *T
	staged    *T
	owner     *Tx
}

func committedRow[T any](v T) *row[T] {
	return &row[T]{committed: &v}
}

// visibleTo returns the image tx would read, or nil when the row does not
// exist for it. A nil tx sees committed data only.
func (r *row[T]) visibleTo(tx *Tx) *T {
	if tx != nil && r.owner == tx {
		return r.staged
	}
	return r.committed
}

// latest returns the newest image regardless of owner.
func (r *row[T]) latest() *T {
	if r.staged != nil {
		return r.staged
	}
	return r.committed
}

// stage records v as tx's write. drop runs on rollback when the row was
// never committed. Callers hold the store mutex.
func (r *row[T]) stage(tx *Tx, v T, drop func()) error {
	if r.owner != nil && r.owner != tx {
		return errRowBusy
	}
	if r.owner == nil {
		r.owner = tx
		tx.onFinish = append(tx.onFinish, func(commit bool) {
			if commit {
				r.committed = r.staged
			} else if r.committed == nil && drop != nil {
				drop()
			}
			r.staged, r.owner = nil, nil
		})
	}
	r.staged = &v
	return nil
}

type rowLocks struct {
	mu   sync.Mutex
	rows map[string]chan struct{}
}

func newRowLocks() *rowLocks {
	return &rowLocks{rows: make(map[string]chan struct{})}
}

func (l *rowLocks) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.rows[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.rows[key] = ch
	}
	return ch
}

func (l *rowLocks) acquire(ctx context.Context, key string) error {
	select {
	case l.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *rowLocks) release(key string) {
	<-l.slot(key)
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"wallet-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository on a Store.
type TransactionRepo struct {
	s *Store
}

func (r *TransactionRepo) Create(_ context.Context, tx pgx.Tx, t *domain.Transaction) error {
	mt, err := r.s.txFor(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.walletLocked(t.WalletID, mt) == nil {
		return fmt.Errorf("insert transaction: wallet %d does not exist", t.WalletID)
	}
	if t.IdempotencyKey != nil {
		// The unique index also covers rows other transactions have not committed yet
		triple := domain.IdempotencyTriple{Key: *t.IdempotencyKey, ClientDate: t.ClientTransactionDate, Amount: t.Amount}
		if s.findByTripleLocked(triple, true) != nil {
			return domain.ErrDuplicateIdempotencyKey
		}
	}

	s.nextTxID++
	now := s.now()
	t.ID, t.CreatedAt, t.UpdatedAt = s.nextTxID, now, now

	id := t.ID
	tr := &row[domain.Transaction]{}
	s.transactions[id] = tr
	return tr.stage(mt, *t, func() { delete(s.transactions, id) })
}

func (r *TransactionRepo) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactionLocked(id, nil), nil
}

func (s *Store) transactionLocked(id int64, tx *Tx) *domain.Transaction {
	tr, ok := s.transactions[id]
	if !ok {
		return nil
	}
	v := tr.visibleTo(tx)
	if v == nil {
		return nil
	}
	t := *v
	return &t
}

func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Transaction, error) {
	mt, err := r.s.txFor(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.lock(ctx, "transaction:"+strconv.FormatInt(id, 10)); err != nil {
		return nil, fmt.Errorf("lock transaction %d: %w", id, err)
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactionLocked(id, mt), nil
}

func (r *TransactionRepo) UpdateStatus(_ context.Context, tx pgx.Tx, id int64, status domain.TransactionStatus) error {
	mt, err := r.s.txFor(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, ok := s.transactions[id]
	if !ok || tr.visibleTo(mt) == nil {
		return fmt.Errorf("transaction not found: %d", id)
	}
	next := *tr.visibleTo(mt)
	next.Status = status
	next.UpdatedAt = s.now()
	if err := tr.stage(mt, next, nil); err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	return nil
}

func (r *TransactionRepo) ListByWallet(_ context.Context, walletID int64, status *domain.TransactionStatus) ([]domain.Transaction, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txns []domain.Transaction
	for _, tr := range s.transactions {
		t := tr.visibleTo(nil)
		if t == nil || t.WalletID != walletID {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		txns = append(txns, *t)
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.Before(txns[j].CreatedAt)
		}
		return txns[i].ID < txns[j].ID
	})
	return txns, nil
}

func (r *TransactionRepo) FindByIdempotency(_ context.Context, triple domain.IdempotencyTriple) (*domain.Transaction, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findByTripleLocked(triple, false), nil
}

// findByTripleLocked looks up a committed row, or any row when staged is set.
func (s *Store) findByTripleLocked(triple domain.IdempotencyTriple, staged bool) *domain.Transaction {
	for _, tr := range s.transactions {
		cand := tr.visibleTo(nil)
		if staged {
			cand = tr.latest()
		}
		if cand == nil || cand.IdempotencyKey == nil || *cand.IdempotencyKey != triple.Key || cand.Amount != triple.Amount {
			continue
		}
		if !sameDate(cand.ClientTransactionDate, triple.ClientDate) {
			continue
		}
		t := *cand
		return &t
	}
	return nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

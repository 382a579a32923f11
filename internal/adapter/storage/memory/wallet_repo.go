package memory

import (
	"context"
	"fmt"
	"sort"

	"wallet-settlement/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository on a Store.
type WalletRepo struct {
	s *Store
}

func (r *WalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[w.TokenID]; exists {
		return domain.ErrDuplicateToken
	}
	s.nextWalletID++
	now := s.now()
	w.ID, w.CreatedAt, w.UpdatedAt = s.nextWalletID, now, now
	s.wallets[w.ID] = committedRow(*w)
	s.tokens[w.TokenID] = w.ID
	return nil
}

func (r *WalletRepo) List(_ context.Context) ([]domain.Wallet, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := make([]domain.Wallet, 0, len(s.wallets))
	for _, r := range s.wallets {
		if w := r.visibleTo(nil); w != nil {
			wallets = append(wallets, *w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
	return wallets, nil
}

func (r *WalletRepo) GetByID(_ context.Context, id int64) (*domain.Wallet, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletLocked(id, nil), nil
}

func (r *WalletRepo) GetByTokenID(_ context.Context, tokenID string) (*domain.Wallet, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletByTokenLocked(tokenID, nil), nil
}

func (r *WalletRepo) GetByTokenIDForUpdate(ctx context.Context, tx pgx.Tx, tokenID string) (*domain.Wallet, error) {
	mt, err := r.s.txFor(tx)
	if err != nil {
		return nil, err
	}
	if err := mt.lock(ctx, "wallet:"+tokenID); err != nil {
		return nil, fmt.Errorf("lock wallet %s: %w", tokenID, err)
	}
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.walletByTokenLocked(tokenID, mt), nil
}

func (r *WalletRepo) UpdateBalance(_ context.Context, tx pgx.Tx, id int64, balance int64, currency domain.Currency) error {
	mt, err := r.s.txFor(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	wr, ok := s.wallets[id]
	if !ok || wr.visibleTo(mt) == nil {
		return fmt.Errorf("wallet not found: %d", id)
	}
	next := *wr.visibleTo(mt)
	next.Balance = balance
	next.Currency = currency
	next.UpdatedAt = s.now()
	if err := wr.stage(mt, next, nil); err != nil {
		return fmt.Errorf("update wallet %d: %w", id, err)
	}
	return nil
}

func (r *WalletRepo) Delete(_ context.Context, tokenID string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.tokens[tokenID]
	if !ok {
		return false, nil
	}
	if wr := s.wallets[id]; wr.owner != nil {
		return false, fmt.Errorf("delete wallet %d: %w", id, errRowBusy)
	}
	for _, tr := range s.transactions {
		if t := tr.latest(); t != nil && t.WalletID == id {
			return false, domain.ErrWalletInUse
		}
	}
	delete(s.tokens, tokenID)
	delete(s.wallets, id)
	return true, nil
}

func (s *Store) walletLocked(id int64, tx *Tx) *domain.Wallet {
	r, ok := s.wallets[id]
	if !ok {
		return nil
	}
	v := r.visibleTo(tx)
	if v == nil {
		return nil
	}
	w := *v
	return &w
}

func (s *Store) walletByTokenLocked(tokenID string, tx *Tx) *domain.Wallet {
	id, ok := s.tokens[tokenID]
	if !ok {
		return nil
	}
	return s.walletLocked(id, tx)
}

package service

import (
	"context"
	"fmt"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/pkg/apperror"

	"github.com/rs/zerolog"
)

const defaultClaimTTL = 24 * time.Hour

// IdempotencyGuard rejects creation requests that replay an accepted
// (key, client date, amount) triple. The store's unique index is the final
// arbiter; the cache claim only narrows the window between check and insert.
type IdempotencyGuard struct {
	txRepo ports.TransactionRepository
	cache  ports.IdempotencyCache
	ttl    time.Duration
	log    zerolog.Logger
}

// NewIdempotencyGuard creates a guard. cache may be nil.
func NewIdempotencyGuard(txRepo ports.TransactionRepository, cache ports.IdempotencyCache, ttl time.Duration, log zerolog.Logger) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = defaultClaimTTL
	}
	return &IdempotencyGuard{
		txRepo: txRepo,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

// Check fails with Conflict when triple was already accepted. On success it
// returns a release func the caller must invoke if the creation does not commit.
func (g *IdempotencyGuard) Check(ctx context.Context, triple domain.IdempotencyTriple) (func(), error) {
	existing, err := g.txRepo.FindByIdempotency(ctx, triple)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("idempotency lookup: %w", err))
	}
	if existing != nil {
		g.log.Warn().
			Str("idempotency_key", triple.Key).
			Int64("tx_id", existing.ID).
			Msg("idempotency replay rejected")
		return nil, apperror.ErrDuplicateTransaction()
	}

	if g.cache == nil {
		return func() {}, nil
	}

	key := triple.CacheKey()
	claimed, err := g.cache.Claim(ctx, key, g.ttl)
	if err != nil {
		// Degraded mode: the store constraint still rejects duplicates
		g.log.Warn().Err(err).Str("key", key).Msg("idempotency claim failed, falling through to store")
		return func() {}, nil
	}
	if !claimed {
		g.log.Warn().Str("idempotency_key", triple.Key).Msg("idempotency claim already held")
		return nil, apperror.ErrDuplicateTransaction()
	}

	return func() {
		if err := g.cache.Release(context.WithoutCancel(ctx), key); err != nil {
			g.log.Warn().Err(err).Str("key", key).Msg("failed to release idempotency claim")
		}
	}, nil
}

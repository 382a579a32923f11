package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testTriple() domain.IdempotencyTriple {
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.IdempotencyTriple{Key: "idem-1", ClientDate: &date, Amount: 500}
}

func TestIdempotencyGuard_FirstRequestClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	cache := mocks.NewMockIdempotencyCache(ctrl)
	guard := NewIdempotencyGuard(txRepo, cache, time.Hour, zerolog.Nop())
	ctx := context.Background()
	triple := testTriple()

	txRepo.EXPECT().FindByIdempotency(ctx, triple).Return(nil, nil)
	cache.EXPECT().Claim(ctx, triple.CacheKey(), time.Hour).Return(true, nil)

	release, err := guard.Check(ctx, triple)
	require.NoError(t, err)
	require.NotNil(t, release)

	cache.EXPECT().Release(gomock.Any(), triple.CacheKey()).Return(nil)
	release()
}

func TestIdempotencyGuard_StoreReplay(t *testing.T) {
	ctrl := gomock.NewController(t)
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	cache := mocks.NewMockIdempotencyCache(ctrl)
	guard := NewIdempotencyGuard(txRepo, cache, time.Hour, zerolog.Nop())
	ctx := context.Background()
	triple := testTriple()

	txRepo.EXPECT().FindByIdempotency(ctx, triple).Return(&domain.Transaction{ID: 3}, nil)

	_, err := guard.Check(ctx, triple)
	assertAppError(t, err, "TRX_002")
}

func TestIdempotencyGuard_ClaimHeldElsewhere(t *testing.T) {
	ctrl := gomock.NewController(t)
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	cache := mocks.NewMockIdempotencyCache(ctrl)
	guard := NewIdempotencyGuard(txRepo, cache, 0, zerolog.Nop())
	ctx := context.Background()
	triple := testTriple()

	txRepo.EXPECT().FindByIdempotency(ctx, triple).Return(nil, nil)
	cache.EXPECT().Claim(ctx, triple.CacheKey(), defaultClaimTTL).Return(false, nil)

	_, err := guard.Check(ctx, triple)
	assertAppError(t, err, "TRX_002")
}

func TestIdempotencyGuard_CacheDownDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	cache := mocks.NewMockIdempotencyCache(ctrl)
	guard := NewIdempotencyGuard(txRepo, cache, time.Hour, zerolog.Nop())
	ctx := context.Background()
	triple := testTriple()

	txRepo.EXPECT().FindByIdempotency(ctx, triple).Return(nil, nil)
	cache.EXPECT().Claim(ctx, triple.CacheKey(), time.Hour).Return(false, errors.New("connection refused"))

	release, err := guard.Check(ctx, triple)
	require.NoError(t, err)
	release() // no Release call expected
}

func TestIdempotencyGuard_WithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	guard := NewIdempotencyGuard(txRepo, nil, time.Hour, zerolog.Nop())
	ctx := context.Background()
	triple := testTriple()

	txRepo.EXPECT().FindByIdempotency(ctx, triple).Return(nil, nil)

	release, err := guard.Check(ctx, triple)
	require.NoError(t, err)
	assert.NotPanics(t, release)
}

func TestIdempotencyGuard_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	txRepo := mocks.NewMockTransactionRepository(ctrl)
	guard := NewIdempotencyGuard(txRepo, nil, time.Hour, zerolog.Nop())
	ctx := context.Background()

	txRepo.EXPECT().FindByIdempotency(ctx, gomock.Any()).Return(nil, errors.New("db down"))

	_, err := guard.Check(ctx, testTriple())
	assertAppError(t, err, "SYS_001")
}

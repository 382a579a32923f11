package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	rates      ports.ExchangeRateClient
	tokenizer  ports.Tokenizer
	log        zerolog.Logger
	now        func() time.Time
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	rates ports.ExchangeRateClient,
	tokenizer ports.Tokenizer,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		transactor: transactor,
		rates:      rates,
		tokenizer:  tokenizer,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateWallet tokenizes the card number and opens a wallet under the token.
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	if !req.Currency.Valid() {
		return nil, apperror.ErrInvalidCurrency(req.Currency.String())
	}
	if req.Balance < 0 {
		return nil, apperror.ErrInvalidRequest("Initial balance cannot be negative")
	}

	wallet := &domain.Wallet{
		TokenID:  s.tokenizer.Token(req.CardNumber),
		Balance:  req.Balance,
		Currency: req.Currency,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrDuplicateToken) {
			return nil, apperror.ErrWalletExists()
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Int64("wallet_id", wallet.ID).
		Str("currency", wallet.Currency.String()).
		Msg("wallet created")

	return wallet, nil
}

func (s *WalletServiceImpl) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.List(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// Resolve returns the wallet owning tokenID.
func (s *WalletServiceImpl) Resolve(ctx context.Context, tokenID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByTokenID(ctx, tokenID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet by token: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// ResolveByID returns the wallet with the given identity.
func (s *WalletServiceImpl) ResolveByID(ctx context.Context, id int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

func (s *WalletServiceImpl) DeleteWallet(ctx context.Context, tokenID string) error {
	existed, err := s.walletRepo.Delete(ctx, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletInUse) {
			return apperror.ErrWalletInUse()
		}
		return apperror.ErrDatabaseError(fmt.Errorf("delete wallet: %w", err))
	}
	if !existed {
		return apperror.ErrWalletNotFound()
	}
	s.log.Info().Str("token_id", tokenID).Msg("wallet deleted")
	return nil
}

// ApplyDelta adds delta to the wallet balance in its own database transaction.
func (s *WalletServiceImpl) ApplyDelta(ctx context.Context, tokenID string, delta int64, currency *domain.Currency) (*domain.FundsInWallet, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	funds, err := s.ApplyDeltaTx(ctx, dbTx, tokenID, delta, currency)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return funds, nil
}

// ApplyDeltaTx locks the wallet row, adds delta and optionally moves the wallet
// to currency. The lock is held until tx ends.
func (s *WalletServiceImpl) ApplyDeltaTx(ctx context.Context, tx pgx.Tx, tokenID string, delta int64, currency *domain.Currency) (*domain.FundsInWallet, error) {
	if currency != nil && !currency.Valid() {
		return nil, apperror.ErrInvalidCurrency(currency.String())
	}

	wallet, err := s.ResolveForUpdate(ctx, tx, tokenID)
	if err != nil {
		return nil, err
	}

	newBalance, err := domain.AddAmount(wallet.Balance, delta)
	if err != nil {
		return nil, apperror.ErrInvalidRequest("Balance would overflow")
	}
	if newBalance < 0 {
		return nil, apperror.ErrInsufficientFunds()
	}

	newCurrency := wallet.Currency
	if currency != nil {
		newCurrency = *currency
	}

	if err := s.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, newCurrency); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update balance: %w", err))
	}

	s.log.Info().
		Str("token_id", tokenID).
		Int64("wallet_id", wallet.ID).
		Int64("amount", delta).
		Int64("balance", newBalance).
		Msg("wallet balance updated")

	return &domain.FundsInWallet{
		TokenID:        tokenID,
		OldBalance:     wallet.Balance,
		CurrentBalance: newBalance,
		Currency:       newCurrency,
	}, nil
}

// Exchange quotes the conversion of the whole balance into target.
// The wallet is not modified.
func (s *WalletServiceImpl) Exchange(ctx context.Context, tokenID string, target domain.Currency) (*domain.ExchangeAttempt, error) {
	if !target.Valid() {
		return nil, apperror.ErrInvalidCurrency(target.String())
	}

	wallet, err := s.Resolve(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if err := checkExchangeable(wallet, target); err != nil {
		return nil, err
	}

	rate, err := s.rates.GetRate(ctx, wallet.Currency, target)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.ErrRateUnavailable(err)
	}
	if rate.From != wallet.Currency {
		s.log.Error().
			Str("token_id", tokenID).
			Str("expected", wallet.Currency.String()).
			Str("got", rate.From.String()).
			Msg("rate provider returned mismatched base currency")
		return nil, apperror.ErrInconsistentRate(wallet.Currency.String(), rate.From.String())
	}

	converted, err := convert(wallet.Balance, rate.Rate)
	if err != nil {
		return nil, err
	}

	return &domain.ExchangeAttempt{
		FromCurrency: wallet.Currency,
		NewCurrency:  target,
		ExchangeRate: rate.Rate,
		Amount:       converted,
		ConvertedAt:  s.now(),
	}, nil
}

// ApplyExchangeTx converts the locked balance at the attempt's rate and moves
// the wallet to the attempt's currency. attempt.Amount is updated to the
// amount actually credited.
func (s *WalletServiceImpl) ApplyExchangeTx(ctx context.Context, tx pgx.Tx, tokenID string, attempt *domain.ExchangeAttempt) (*domain.FundsInWallet, error) {
	wallet, err := s.ResolveForUpdate(ctx, tx, tokenID)
	if err != nil {
		return nil, err
	}
	if attempt.FromCurrency != "" && wallet.Currency != attempt.FromCurrency {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf(
			"Wallet currency changed from %s to %s during exchange", attempt.FromCurrency, wallet.Currency))
	}
	if err := checkExchangeable(wallet, attempt.NewCurrency); err != nil {
		return nil, err
	}

	converted, err := convert(wallet.Balance, attempt.ExchangeRate)
	if err != nil {
		return nil, err
	}
	attempt.Amount = converted

	funds, err := s.ApplyDeltaTx(ctx, tx, tokenID, converted-wallet.Balance, &attempt.NewCurrency)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("token_id", tokenID).
		Str("from", wallet.Currency.String()).
		Str("to", attempt.NewCurrency.String()).
		Str("rate", attempt.ExchangeRate.String()).
		Msg("wallet exchanged")

	return funds, nil
}

// ResolveForUpdate locks and returns the wallet owning tokenID.
func (s *WalletServiceImpl) ResolveForUpdate(ctx context.Context, tx pgx.Tx, tokenID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByTokenIDForUpdate(ctx, tx, tokenID)
	if err != nil {
		return nil, lockError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

func checkExchangeable(wallet *domain.Wallet, target domain.Currency) error {
	if wallet.Balance <= 0 {
		return apperror.ErrNothingToExchange()
	}
	if wallet.Currency == target {
		return apperror.ErrSameCurrency()
	}
	return nil
}

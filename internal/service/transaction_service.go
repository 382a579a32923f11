package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	reasonInsufficientFunds = "insufficient funds"
	reasonCurrencyMismatch  = "wallet currency differs from transaction currency"
)

// errAlreadySettling aborts a gateway request for a row that left PENDING
// while the caller waited for its lock.
var errAlreadySettling = errors.New("transaction already left pending")

// TransactionServiceImpl implements ports.TransactionService.
type TransactionServiceImpl struct {
	txRepo     ports.TransactionRepository
	walletSvc  ports.WalletService
	transactor ports.DBTransactor
	guard      *IdempotencyGuard
	channel    ports.SettlementChannel
	metrics    ports.MetricsRecorder
	log        zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl. metrics may be nil.
func NewTransactionService(
	txRepo ports.TransactionRepository,
	walletSvc ports.WalletService,
	transactor ports.DBTransactor,
	guard *IdempotencyGuard,
	channel ports.SettlementChannel,
	metrics ports.MetricsRecorder,
	log zerolog.Logger,
) *TransactionServiceImpl {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TransactionServiceImpl{
		txRepo:     txRepo,
		walletSvc:  walletSvc,
		transactor: transactor,
		guard:      guard,
		channel:    channel,
		metrics:    metrics,
		log:        log,
	}
}

// Create records a new transaction against the wallet owning req.TokenID.
// Deposits and withdrawals are stored PENDING and the prospective funds are
// returned. Exchanges settle immediately against a live rate.
func (s *TransactionServiceImpl) Create(ctx context.Context, req ports.CreateTransactionRequest) (*domain.FundsInWallet, error) {
	if !req.TargetCurrency.Valid() {
		return nil, apperror.ErrInvalidCurrency(req.TargetCurrency.String())
	}

	wallet, err := s.walletSvc.Resolve(ctx, req.TokenID)
	if err != nil {
		if apperror.Is(err, "WAL_001") {
			return nil, apperror.ErrInvalidRequest("No wallet found for token")
		}
		return nil, err
	}

	release := func() {}
	if req.IdempotencyKey != nil {
		triple := domain.IdempotencyTriple{Key: *req.IdempotencyKey, ClientDate: req.ClientDate, Amount: req.Amount}
		release, err = s.guard.Check(ctx, triple)
		if err != nil {
			return nil, err
		}
	}

	funds, err := s.create(ctx, wallet, req)
	if err != nil {
		release()
		return nil, err
	}
	return funds, nil
}

func (s *TransactionServiceImpl) create(ctx context.Context, wallet *domain.Wallet, req ports.CreateTransactionRequest) (*domain.FundsInWallet, error) {
	txType, err := domain.Classify(wallet.Currency, req.TargetCurrency, req.Amount)
	switch {
	case errors.Is(err, domain.ErrExchangeWithAmount):
		return nil, apperror.ErrInvalidRequest("Exchange transactions must carry a zero amount")
	case errors.Is(err, domain.ErrNoOpTransaction):
		return nil, apperror.ErrInvalidRequest("Amount must not be zero")
	case err != nil:
		return nil, apperror.InternalError(err)
	}

	txn := &domain.Transaction{
		WalletID:              wallet.ID,
		Type:                  txType,
		Status:                domain.InitialStatus(txType),
		OriginCurrency:        wallet.Currency,
		CurrentCurrency:       req.TargetCurrency,
		Amount:                req.Amount,
		ClientTransactionDate: req.ClientDate,
		IdempotencyKey:        req.IdempotencyKey,
	}

	if txType == domain.TransactionTypeExchange {
		return s.createExchange(ctx, wallet, txn)
	}

	prospective, err := domain.AddAmount(wallet.Balance, req.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidRequest("Balance would overflow")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.insert(ctx, dbTx, txn); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("tx_id", txn.ID).
		Int64("wallet_id", wallet.ID).
		Str("type", string(txn.Type)).
		Int64("amount", txn.Amount).
		Msg("transaction created")

	return &domain.FundsInWallet{
		TokenID:        wallet.TokenID,
		OldBalance:     wallet.Balance,
		CurrentBalance: prospective,
		Currency:       wallet.Currency,
	}, nil
}

// createExchange fetches the rate first, then converts the wallet and records
// the COMPLETED exchange in one database transaction.
func (s *TransactionServiceImpl) createExchange(ctx context.Context, wallet *domain.Wallet, txn *domain.Transaction) (*domain.FundsInWallet, error) {
	attempt, err := s.walletSvc.Exchange(ctx, wallet.TokenID, txn.CurrentCurrency)
	if err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	funds, err := s.walletSvc.ApplyExchangeTx(ctx, dbTx, wallet.TokenID, attempt)
	if err != nil {
		return nil, err
	}

	if err := s.insert(ctx, dbTx, txn); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransition(domain.TransactionStatusPending, domain.TransactionStatusCompleted)
	s.log.Info().
		Int64("tx_id", txn.ID).
		Int64("wallet_id", wallet.ID).
		Str("from", txn.OriginCurrency.String()).
		Str("to", txn.CurrentCurrency.String()).
		Int64("amount", attempt.Amount).
		Msg("exchange transaction completed")

	return funds, nil
}

func (s *TransactionServiceImpl) insert(ctx context.Context, dbTx pgx.Tx, txn *domain.Transaction) error {
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			return apperror.ErrDuplicateTransaction()
		}
		return apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}
	return nil
}

// Complete settles every PENDING transaction of the wallet, oldest first.
// A settlement channel failure aborts the remaining batch.
func (s *TransactionServiceImpl) Complete(ctx context.Context, walletID int64, filter domain.TransactionStatus) ([]domain.SettlementResult, error) {
	if filter == "" {
		filter = domain.TransactionStatusPending
	}
	if filter != domain.TransactionStatusPending {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("Only %s transactions can be completed", domain.TransactionStatusPending))
	}

	if _, err := s.walletSvc.ResolveByID(ctx, walletID); err != nil {
		return nil, err
	}

	txns, err := s.txRepo.ListByWallet(ctx, walletID, &filter)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}

	s.log.Info().
		Int64("wallet_id", walletID).
		Int("count", len(txns)).
		Str("channel", s.channel.Name()).
		Msg("completing pending transactions")

	results := make([]domain.SettlementResult, 0, len(txns))
	for i := range txns {
		result, err := s.settle(ctx, &txns[i])
		if err != nil {
			s.log.Error().Err(err).
				Int64("tx_id", txns[i].ID).
				Int64("wallet_id", walletID).
				Msg("completion batch aborted")
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// Dispatch settles a single PENDING transaction through the configured channel.
func (s *TransactionServiceImpl) Dispatch(ctx context.Context, transactionID int64) (*domain.SettlementResult, error) {
	txn, err := s.getTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TransactionStatusPending {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf(
			"Transaction %d is %s, not %s", txn.ID, txn.Status, domain.TransactionStatusPending))
	}
	return s.settle(ctx, txn)
}

func (s *TransactionServiceImpl) settle(ctx context.Context, txn *domain.Transaction) (*domain.SettlementResult, error) {
	// Re-read per item so earlier completions in the batch are visible
	wallet, err := s.walletSvc.ResolveByID(ctx, txn.WalletID)
	if err != nil {
		return nil, err
	}
	if reason := fundsProblem(wallet, txn); reason != "" {
		return s.failLocally(ctx, txn, reason)
	}

	if s.channel.Async() {
		return s.dispatchAsync(ctx, txn)
	}
	return s.dispatchSync(ctx, txn)
}

func fundsProblem(wallet *domain.Wallet, txn *domain.Transaction) string {
	if wallet.Currency != txn.CurrentCurrency {
		return reasonCurrencyMismatch
	}
	prospective, err := domain.AddAmount(wallet.Balance, txn.Amount)
	if err != nil || prospective < 0 {
		return reasonInsufficientFunds
	}
	return ""
}

// failLocally marks txn FAILED without a settlement round trip. Queue
// consumers still observe the terminal status through a synthetic event.
func (s *TransactionServiceImpl) failLocally(ctx context.Context, txn *domain.Transaction, reason string) (*domain.SettlementResult, error) {
	var settled *domain.Transaction
	failed, err := s.withLockedTransaction(ctx, txn.ID, func(_ pgx.Tx, locked *domain.Transaction) error {
		if locked.Status != domain.TransactionStatusPending {
			settled = locked
			return errAlreadySettling
		}
		return nil
	}, domain.TransactionStatusFailed)
	if errors.Is(err, errAlreadySettling) {
		return s.alreadySettling(settled), nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Warn().
		Int64("tx_id", failed.ID).
		Int64("wallet_id", failed.WalletID).
		Int64("amount", failed.Amount).
		Str("reason", reason).
		Msg("transaction failed before settlement")

	if s.channel.Async() {
		msg := domain.NewSettlementMessage(failed, domain.TransactionStatusFailed)
		if _, err := s.channel.RequestConfirmation(ctx, msg); err != nil {
			s.metrics.ObserveSettlement(s.channel.Name(), "error")
			s.log.Warn().Err(err).Int64("tx_id", failed.ID).Msg("failed to publish synthetic FAILED event")
		} else {
			s.metrics.ObserveSettlement(s.channel.Name(), outcomeLabel(domain.TransactionStatusFailed))
		}
	}

	return &domain.SettlementResult{
		TransactionID: failed.ID,
		Status:        failed.Status,
		Reason:        reason,
	}, nil
}

// dispatchAsync moves txn to GATEWAY and publishes the request in the same
// database transaction. A publish failure rolls the status back.
func (s *TransactionServiceImpl) dispatchAsync(ctx context.Context, txn *domain.Transaction) (*domain.SettlementResult, error) {
	var settled *domain.Transaction
	dispatched, err := s.withLockedTransaction(ctx, txn.ID, func(_ pgx.Tx, locked *domain.Transaction) error {
		if locked.Status != domain.TransactionStatusPending {
			settled = locked
			return errAlreadySettling
		}
		msg := domain.NewSettlementMessage(locked, domain.TransactionStatusPending)
		if _, err := s.channel.RequestConfirmation(ctx, msg); err != nil {
			s.metrics.ObserveSettlement(s.channel.Name(), "error")
			return asBadGateway(err)
		}
		return nil
	}, domain.TransactionStatusGateway)
	if errors.Is(err, errAlreadySettling) {
		return s.alreadySettling(settled), nil
	}
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSettlement(s.channel.Name(), "dispatched")
	s.log.Info().
		Int64("tx_id", dispatched.ID).
		Str("channel", s.channel.Name()).
		Msg("settlement request published")

	return &domain.SettlementResult{TransactionID: dispatched.ID, Status: dispatched.Status}, nil
}

// dispatchSync asks the gateway for a verdict while holding the PENDING row
// lock, so a concurrent settle of the same row waits and then skips it. The
// verdict is applied in the same database transaction; a gateway failure
// leaves the row PENDING.
func (s *TransactionServiceImpl) dispatchSync(ctx context.Context, txn *domain.Transaction) (*domain.SettlementResult, error) {
	var (
		verdict *domain.GatewayVerdict
		settled *domain.Transaction
		funds   *domain.FundsInWallet
		reason  string
	)
	updated, err := s.withLockedTransaction(ctx, txn.ID, func(dbTx pgx.Tx, locked *domain.Transaction) error {
		if locked.Status != domain.TransactionStatusPending {
			settled = locked
			return errAlreadySettling
		}

		msg := domain.NewSettlementMessage(locked, domain.TransactionStatusPending)
		v, err := s.channel.RequestConfirmation(ctx, msg)
		if err != nil {
			s.metrics.ObserveSettlement(s.channel.Name(), "error")
			return asBadGateway(err)
		}
		if v == nil || v.TransactionID != locked.ID {
			s.metrics.ObserveSettlement(s.channel.Name(), "error")
			return apperror.ErrBadGateway(fmt.Errorf("gateway verdict does not match transaction %d", locked.ID))
		}

		switch {
		case v.Status.IsTerminal():
			verdict = v
			funds, reason, err = s.applyVerdict(ctx, dbTx, locked, v.Status)
			return err
		case v.Status == domain.TransactionStatusPending, v.Status == domain.TransactionStatusGateway:
			// Verdict deferred: the gateway will call the webhook later
			verdict = v
			return nil
		default:
			s.metrics.ObserveSettlement(s.channel.Name(), "error")
			return apperror.ErrBadGateway(fmt.Errorf("gateway returned unknown status %q", v.Status))
		}
	}, domain.TransactionStatusGateway)
	if errors.Is(err, errAlreadySettling) {
		return s.alreadySettling(settled), nil
	}
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveSettlement(s.channel.Name(), outcomeLabel(verdict.Status))
	s.log.Info().
		Int64("tx_id", updated.ID).
		Str("verdict", string(verdict.Status)).
		Str("status", string(updated.Status)).
		Str("reason", reason).
		Msg("gateway verdict applied")

	return &domain.SettlementResult{
		TransactionID: updated.ID,
		Status:        updated.Status,
		Funds:         funds,
		Reason:        reason,
	}, nil
}

// alreadySettling reports the current state of a row another caller moved
// past PENDING while this one waited for its lock.
func (s *TransactionServiceImpl) alreadySettling(txn *domain.Transaction) *domain.SettlementResult {
	s.log.Info().
		Int64("tx_id", txn.ID).
		Str("status", string(txn.Status)).
		Msg("transaction already left PENDING, skipping settlement")
	return &domain.SettlementResult{TransactionID: txn.ID, Status: txn.Status}
}

// Cancel moves a non-terminal transaction to CANCELLED. The wallet is untouched.
func (s *TransactionServiceImpl) Cancel(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	cancelled, err := s.withLockedTransaction(ctx, transactionID, func(_ pgx.Tx, locked *domain.Transaction) error {
		if locked.Status == domain.TransactionStatusCancelled {
			return apperror.ErrAlreadyCancelled()
		}
		if !domain.CanCancel(locked.Status) {
			return apperror.ErrInvalidTransition(string(locked.Status), string(domain.TransactionStatusCancelled))
		}
		return nil
	}, domain.TransactionStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("tx_id", cancelled.ID).Msg("transaction cancelled")
	return cancelled, nil
}

// ApplyExternalUpdate applies a settlement verdict. On COMPLETED the wallet
// delta is applied in the same database transaction; a delta the wallet
// cannot absorb turns the verdict into FAILED.
func (s *TransactionServiceImpl) ApplyExternalUpdate(ctx context.Context, transactionID int64, status domain.TransactionStatus) (*domain.SettlementResult, error) {
	if !status.Valid() {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("Unknown transaction status %q", status))
	}

	var (
		funds  *domain.FundsInWallet
		reason string
	)
	updated, err := s.withLockedTransaction(ctx, transactionID, func(dbTx pgx.Tx, locked *domain.Transaction) error {
		var err error
		funds, reason, err = s.applyVerdict(ctx, dbTx, locked, status)
		return err
	}, status)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("tx_id", updated.ID).
		Str("status", string(updated.Status)).
		Str("reason", reason).
		Msg("external update applied")

	return &domain.SettlementResult{
		TransactionID: updated.ID,
		Status:        updated.Status,
		Funds:         funds,
		Reason:        reason,
	}, nil
}

// applyVerdict moves the locked row to status. On COMPLETED the wallet delta is
// applied in dbTx; a delta the wallet cannot absorb leaves the row FAILED with
// a reason.
func (s *TransactionServiceImpl) applyVerdict(ctx context.Context, dbTx pgx.Tx, locked *domain.Transaction, status domain.TransactionStatus) (*domain.FundsInWallet, string, error) {
	if locked.Status == status {
		return nil, "", apperror.ErrStatusAlreadySet(string(status))
	}
	if !domain.CanTransition(locked.Status, status) {
		return nil, "", apperror.ErrInvalidTransition(string(locked.Status), string(status))
	}
	if status != domain.TransactionStatusCompleted {
		locked.Status = status
		return nil, "", nil
	}

	funds, reason, err := s.applyCompletion(ctx, dbTx, locked)
	if err != nil {
		return nil, "", err
	}
	if reason != "" {
		locked.Status = domain.TransactionStatusFailed
		return nil, reason, nil
	}
	locked.Status = status
	return funds, "", nil
}

// applyCompletion credits or debits the wallet for txn under the wallet row lock.
// It returns a non-empty reason when the wallet cannot take the delta.
func (s *TransactionServiceImpl) applyCompletion(ctx context.Context, dbTx pgx.Tx, txn *domain.Transaction) (*domain.FundsInWallet, string, error) {
	owner, err := s.walletSvc.ResolveByID(ctx, txn.WalletID)
	if err != nil {
		return nil, "", err
	}
	wallet, err := s.walletSvc.ResolveForUpdate(ctx, dbTx, owner.TokenID)
	if err != nil {
		return nil, "", err
	}
	if wallet.Currency != txn.CurrentCurrency {
		return nil, reasonCurrencyMismatch, nil
	}

	currency := txn.CurrentCurrency
	funds, err := s.walletSvc.ApplyDeltaTx(ctx, dbTx, wallet.TokenID, txn.Amount, &currency)
	if err != nil {
		if apperror.Is(err, "TRX_008") {
			return nil, reasonInsufficientFunds, nil
		}
		return nil, "", err
	}
	return funds, "", nil
}

func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, walletID int64, status *domain.TransactionStatus) ([]domain.Transaction, error) {
	if status != nil && !status.Valid() {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("Unknown transaction status %q", *status))
	}
	if _, err := s.walletSvc.ResolveByID(ctx, walletID); err != nil {
		return nil, err
	}
	txns, err := s.txRepo.ListByWallet(ctx, walletID, status)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}

func (s *TransactionServiceImpl) getTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

// withLockedTransaction locks the transaction row, runs check and persists the
// move to status (or to whatever status check left on the row) before committing.
func (s *TransactionServiceImpl) withLockedTransaction(
	ctx context.Context,
	id int64,
	check func(dbTx pgx.Tx, locked *domain.Transaction) error,
	status domain.TransactionStatus,
) (*domain.Transaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.txRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return nil, lockError(fmt.Errorf("lock transaction: %w", err))
	}
	if locked == nil {
		return nil, apperror.ErrTransactionNotFound()
	}

	from := locked.Status
	if err := check(dbTx, locked); err != nil {
		return nil, err
	}
	if locked.Status == from {
		locked.Status = status
	}

	if err := s.txRepo.UpdateStatus(ctx, dbTx, locked.ID, locked.Status); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update transaction status: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransition(from, locked.Status)
	return locked, nil
}

func asBadGateway(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Kind == apperror.KindBadGateway {
		return appErr
	}
	return apperror.ErrBadGateway(err)
}

func outcomeLabel(status domain.TransactionStatus) string {
	return strings.ToLower(string(status))
}

type nopMetrics struct{}

func (nopMetrics) ObserveTransition(_, _ domain.TransactionStatus) {}
func (nopMetrics) ObserveSettlement(_, _ string)                  {}

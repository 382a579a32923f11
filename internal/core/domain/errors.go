package domain

import "errors"

var (
	ErrUnknownCurrency          = errors.New("unknown currency")
	ErrAmountOverflow           = errors.New("amount overflows int64")
	ErrNonPositiveRate          = errors.New("exchange rate rounds to zero or below")
	ErrNoOpTransaction          = errors.New("amount is zero for a same-currency transaction")
	ErrExchangeWithAmount       = errors.New("exchange transactions must carry a zero amount")
	ErrDuplicateIdempotencyKey  = errors.New("idempotency key already used")
	ErrDuplicateToken           = errors.New("wallet token already exists")
	ErrWalletInUse              = errors.New("wallet is referenced by transactions")
	ErrInvalidTransactionStatus = errors.New("unknown transaction status")
)

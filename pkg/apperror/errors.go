package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes into the categories callers branch on.
type Kind string

const (
	KindInvalidRequest     Kind = "invalid_request"
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindBadGateway         Kind = "bad_gateway"
	KindServiceUnavailable Kind = "service_unavailable"
	KindInconsistent       Kind = "inconsistent"
	KindInternal           Kind = "internal"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Kind       Kind   `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError. The kind is derived from the HTTP status.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Kind:       kindFor(code, httpStatus),
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	e := New(code, message, httpStatus)
	e.Err = err
	return e
}

// KindOf reports the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func kindFor(code string, status int) Kind {
	if code == "GW_003" {
		return KindInconsistent
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests:
		return KindInvalidRequest
	case http.StatusConflict:
		return KindConflict
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadGateway:
		return KindBadGateway
	case http.StatusServiceUnavailable:
		return KindServiceUnavailable
	default:
		return KindInternal
	}
}

// ---- Wallet (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

func ErrInvalidCurrency(value string) *AppError {
	return New("WAL_002", fmt.Sprintf("Unsupported currency %q", value), http.StatusBadRequest)
}

func ErrNothingToExchange() *AppError {
	return New("WAL_003", "Nothing to exchange", http.StatusBadRequest)
}

func ErrSameCurrency() *AppError {
	return New("WAL_004", "Wallet already holds the target currency", http.StatusBadRequest)
}

func ErrWalletExists() *AppError {
	return New("WAL_005", "Wallet already exists for this card", http.StatusConflict)
}

func ErrWalletInUse() *AppError {
	return New("WAL_006", "Wallet has transactions and cannot be deleted", http.StatusConflict)
}

// ---- Transactions (TRX) ----

func ErrInvalidRequest(message string) *AppError {
	return New("TRX_001", message, http.StatusBadRequest)
}

func ErrDuplicateTransaction() *AppError {
	return New("TRX_002", "Transaction already accepted for this idempotency key", http.StatusConflict)
}

func ErrStatusAlreadySet(status string) *AppError {
	return New("TRX_003", fmt.Sprintf("Transaction is already %s", status), http.StatusConflict)
}

func ErrTransactionNotFound() *AppError {
	return New("TRX_004", "Transaction not found", http.StatusNotFound)
}

func ErrInvalidTransition(from, to string) *AppError {
	return New("TRX_005", fmt.Sprintf("Cannot move transaction from %s to %s", from, to), http.StatusBadRequest)
}

func ErrAlreadyCancelled() *AppError {
	return New("TRX_006", "Transaction is already cancelled", http.StatusBadRequest)
}

func ErrMissingIdempotencyKey() *AppError {
	return New("TRX_007", "Idempotency-Key header is required", http.StatusBadRequest)
}

func ErrInsufficientFunds() *AppError {
	return New("TRX_008", "Insufficient balance in wallet", http.StatusBadRequest)
}

// ---- External gateways (GW) ----

func ErrBadGateway(err error) *AppError {
	return Wrap("GW_001", "Settlement gateway rejected the request", http.StatusBadGateway, err)
}

func ErrRateUnavailable(err error) *AppError {
	return Wrap("GW_002", "Exchange rate provider unavailable", http.StatusServiceUnavailable, err)
}

func ErrInconsistentRate(expected, got string) *AppError {
	return New("GW_003", fmt.Sprintf("Rate provider returned base %s, expected %s", got, expected), http.StatusInternalServerError)
}

func ErrUnusableRate(err error) *AppError {
	return Wrap("GW_003", "Rate provider returned an unusable rate", http.StatusInternalServerError, err)
}

// ---- Security (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a TRX_001-style validation error.
func Validation(message string) *AppError {
	return ErrInvalidRequest(message)
}

package service

import (
	"context"
	"errors"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/pkg/apperror"

	"github.com/shopspring/decimal"
)

// lockError reports an expired wait for a row lock as a lock timeout.
func lockError(err error) *apperror.AppError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.ErrLockTimeout(err)
	}
	return apperror.ErrDatabaseError(err)
}

func convert(balance int64, rate decimal.Decimal) (int64, error) {
	converted, err := domain.Convert(balance, rate)
	switch {
	case errors.Is(err, domain.ErrNonPositiveRate):
		return 0, apperror.ErrUnusableRate(err)
	case errors.Is(err, domain.ErrAmountOverflow):
		return 0, apperror.ErrInvalidRequest("Converted balance would overflow")
	case err != nil:
		return 0, apperror.InternalError(err)
	}
	return converted, nil
}

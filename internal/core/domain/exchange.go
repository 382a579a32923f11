package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// ExchangeRate is a spot rate quoted by the rate provider.
type ExchangeRate struct {
	From      Currency
	To        Currency
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// ExchangeAttempt is the outcome of converting a whole wallet balance.
type ExchangeAttempt struct {
	FromCurrency Currency        `json:"-"`
	NewCurrency  Currency        `json:"newCurrency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Amount       int64           `json:"amount"`
	ConvertedAt  time.Time       `json:"convertedAt"`
}

// ScaledRate rounds rate to two decimals and returns it multiplied by 100.
func ScaledRate(rate decimal.Decimal) int64 {
	return rate.Mul(hundred).Round(0).IntPart()
}

// Convert computes floor(balance * round(rate, 2)) in exact arithmetic.
func Convert(balance int64, rate decimal.Decimal) (int64, error) {
	scaled := ScaledRate(rate)
	if scaled <= 0 {
		return 0, ErrNonPositiveRate
	}
	converted := decimal.NewFromInt(balance).
		Mul(decimal.NewFromInt(scaled)).
		Shift(-2).
		Floor()
	if converted.GreaterThan(maxInt64) {
		return 0, ErrAmountOverflow
	}
	return converted.IntPart(), nil
}

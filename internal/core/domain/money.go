package domain

import (
	"fmt"
	"math"
	"strings"
)

// Currency is the closed set of currencies a wallet can hold.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyHKD Currency = "HKD"
	CurrencyPLN Currency = "PLN"
)

// Currencies lists every supported currency.
var Currencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyHKD, CurrencyPLN}

// ParseCurrency accepts a case-insensitive ISO code from the supported set.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyHKD, CurrencyPLN:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

// AddAmount adds two minor-unit amounts, failing instead of wrapping around.
func AddAmount(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

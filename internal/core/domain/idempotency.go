package domain

import (
	"strconv"
	"strings"
	"time"
)

// IdempotencyTriple identifies an accepted creation request.
type IdempotencyTriple struct {
	Key        string
	ClientDate *time.Time
	Amount     int64
}

// CacheKey renders the triple as a stable string for key-value stores.
func (t IdempotencyTriple) CacheKey() string {
	date := "-"
	if t.ClientDate != nil {
		date = t.ClientDate.UTC().Format(time.RFC3339Nano)
	}
	return strings.Join([]string{t.Key, date, strconv.FormatInt(t.Amount, 10)}, "|")
}

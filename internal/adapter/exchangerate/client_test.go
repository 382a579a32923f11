package exchangerate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingHTTPClient implements HTTPClient and always errors.
type failingHTTPClient struct {
	err error
}

func (f *failingHTTPClient) Do(_ *http.Request) (*http.Response, error) {
	return nil, f.err
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestClient_GetRate_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.9234,"GBP":0.7891}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v6/", "secret-key", time.Second, nil, zerolog.Nop())
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	rate, err := c.GetRate(context.Background(), domain.CurrencyUSD, domain.CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, "/v6/secret-key/latest/USD", gotPath)
	assert.Equal(t, domain.CurrencyUSD, rate.From)
	assert.Equal(t, domain.CurrencyEUR, rate.To)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.9234")), "rate %s", rate.Rate)
	assert.Equal(t, fixed, rate.FetchedAt)
}

func TestClient_GetRate_ReportsQuotedBase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","base_code":"eur","conversion_rates":{"GBP":0.85}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", time.Second, nil, zerolog.Nop())
	rate, err := c.GetRate(context.Background(), domain.CurrencyUSD, domain.CurrencyGBP)
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyEUR, rate.From)
}

func TestClient_GetRate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
		target domain.Currency
	}{
		{"non-200", http.StatusInternalServerError, `oops`, "GW_002", domain.CurrencyEUR},
		{"provider error result", http.StatusOK, `{"result":"error","error-type":"invalid-key"}`, "GW_002", domain.CurrencyEUR},
		{"malformed body", http.StatusOK, `{"conversion_rates":`, "GW_002", domain.CurrencyEUR},
		{"target not quoted", http.StatusOK, `{"result":"success","base_code":"USD","conversion_rates":{"EUR":0.9}}`, "GW_003", domain.CurrencyPLN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", time.Second, nil, zerolog.Nop())
			_, err := c.GetRate(context.Background(), domain.CurrencyUSD, tt.target)
			assertCode(t, err, tt.code)
		})
	}
}

func TestClient_GetRate_NetworkError(t *testing.T) {
	c := NewClient("http://rates.invalid", "k", time.Second, &failingHTTPClient{err: errors.New("dial tcp: no such host")}, zerolog.Nop())

	_, err := c.GetRate(context.Background(), domain.CurrencyUSD, domain.CurrencyEUR)
	assertCode(t, err, "GW_002")
	assert.Equal(t, apperror.KindServiceUnavailable, apperror.KindOf(err))
}

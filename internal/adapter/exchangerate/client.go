package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// latestResponse is the subset of the provider's /latest payload we read.
type latestResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Client implements ports.ExchangeRateClient against an exchangerate-api style provider:
// GET {baseURL}/{apiKey}/latest/{FROM}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	log        zerolog.Logger
	now        func() time.Time
}

// NewClient creates a rate provider client. httpClient may be nil.
func NewClient(baseURL, apiKey string, timeout time.Duration, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GetRate fetches the spot rate from -> to. The returned From is the base the
// provider actually quoted, which callers compare against what they asked for.
func (c *Client) GetRate(ctx context.Context, from, to domain.Currency) (*domain.ExchangeRate, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build rate request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("from", from.String()).Msg("exchange rate request failed")
		return nil, apperror.ErrRateUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("from", from.String()).
			Str("body", string(body)).
			Msg("exchange rate provider returned non-200")
		return nil, apperror.ErrRateUnavailable(fmt.Errorf("rate provider status %d", resp.StatusCode))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.ErrRateUnavailable(fmt.Errorf("decode rate response: %w", err))
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, apperror.ErrRateUnavailable(fmt.Errorf("rate provider result %q", payload.Result))
	}

	rate, ok := payload.ConversionRates[to.String()]
	if !ok {
		return nil, apperror.ErrUnusableRate(fmt.Errorf("no %s rate quoted for base %s", to, payload.BaseCode))
	}

	c.log.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Str("base", payload.BaseCode).
		Str("rate", rate.String()).
		Msg("exchange rate fetched")

	return &domain.ExchangeRate{
		From:      domain.Currency(strings.ToUpper(payload.BaseCode)),
		To:        to,
		Rate:      rate,
		FetchedAt: c.now(),
	}, nil
}

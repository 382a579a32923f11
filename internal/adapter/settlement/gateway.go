package settlement

import (
	"bytes"
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
)

// WebhookHeader carries the callback URL the gateway posts late verdicts to.
const WebhookHeader = "webhook"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type gatewayResponse struct {
	Result struct {
		Status     int    `json:"status"`
		StatusText string `json:"statusText"`
		Data       struct {
			TransactionID     int64  `json:"transactionId"`
			TransactionStatus string `json:"transactionStatus"`
		} `json:"data"`
	} `json:"result"`
}

// Gateway implements ports.SettlementChannel as a synchronous HTTP call.
type Gateway struct {
	url        string
	webhookURL string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewGateway creates the HTTP settlement channel. httpClient may be nil.
func NewGateway(url, webhookURL string, timeout time.Duration, httpClient HTTPClient, log zerolog.Logger) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Gateway{
		url:        url,
		webhookURL: webhookURL,
		httpClient: httpClient,
		log:        log,
	}
}

func (g *Gateway) Name() string { return "gateway" }

func (g *Gateway) Async() bool { return false }

// RequestConfirmation posts msg to the gateway and returns its verdict.
// Any transport failure or an answer other than 200 is a BadGateway.
func (g *Gateway) RequestConfirmation(ctx context.Context, msg domain.SettlementMessage) (*domain.GatewayVerdict, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal settlement message: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build gateway request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if g.webhookURL != "" {
		req.Header.Set(WebhookHeader, g.webhookURL)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Warn().Err(err).Int64("tx_id", msg.ID).Msg("gateway: request failed")
		return nil, apperror.ErrBadGateway(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.log.Warn().
			Int64("tx_id", msg.ID).
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("gateway: non-200 response")
		return nil, apperror.ErrBadGateway(fmt.Errorf("gateway status %d", resp.StatusCode))
	}

	var payload gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperror.ErrBadGateway(fmt.Errorf("decode gateway response: %w", err))
	}

	verdict := &domain.GatewayVerdict{
		TransactionID: payload.Result.Data.TransactionID,
		Status:        domain.TransactionStatus(strings.ToUpper(payload.Result.Data.TransactionStatus)),
	}

	g.log.Debug().
		Int64("tx_id", msg.ID).
		Int("status", resp.StatusCode).
		Str("verdict", string(verdict.Status)).
		Msg("gateway: response received")

	return verdict, nil
}

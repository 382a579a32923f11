package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-settlement/internal/core/domain"
	"wallet-settlement/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHTTPClient struct{ err error }

func (f *failingHTTPClient) Do(_ *http.Request) (*http.Response, error) { return nil, f.err }

func testMessage() domain.SettlementMessage {
	return domain.SettlementMessage{
		ID:              12,
		Status:          domain.TransactionStatusPending,
		Amount:          -250,
		Currency:        domain.CurrencyUSD,
		OriginCreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGateway_RequestConfirmation_Success(t *testing.T) {
	var (
		gotBody    domain.SettlementMessage
		gotWebhook string
		gotMethod  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotWebhook = r.Header.Get(WebhookHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"result":{"status":200,"statusText":"OK","data":{"transactionId":12,"transactionStatus":"completed"}}}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "http://wallets.local/api/v1/transaction/webhook", time.Second, nil, zerolog.Nop())
	assert.Equal(t, "gateway", g.Name())
	assert.False(t, g.Async())

	verdict, err := g.RequestConfirmation(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "http://wallets.local/api/v1/transaction/webhook", gotWebhook)
	assert.Equal(t, int64(12), gotBody.ID)
	assert.Equal(t, int64(-250), gotBody.Amount)
	assert.True(t, gotBody.OriginCreatedAt.Equal(testMessage().OriginCreatedAt))
	assert.Equal(t, &domain.GatewayVerdict{TransactionID: 12, Status: domain.TransactionStatusCompleted}, verdict)
}

func TestGateway_RequestConfirmation_NonSuccess(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		g := NewGateway(srv.URL, "", time.Second, nil, zerolog.Nop())
		_, err := g.RequestConfirmation(context.Background(), testMessage())
		assert.True(t, apperror.Is(err, "GW_001"), "status %d: %v", status, err)
		assert.Equal(t, apperror.KindBadGateway, apperror.KindOf(err))
		srv.Close()
	}
}

func TestGateway_RequestConfirmation_OtherSuccessCodesRejected(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusAccepted, http.StatusNoContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			if status != http.StatusNoContent {
				_, _ = w.Write([]byte(`{"result":{"data":{"transactionId":12,"transactionStatus":"completed"}}}`))
			}
		}))

		g := NewGateway(srv.URL, "", time.Second, nil, zerolog.Nop())
		verdict, err := g.RequestConfirmation(context.Background(), testMessage())
		assert.Nil(t, verdict, "status %d", status)
		assert.True(t, apperror.Is(err, "GW_001"), "status %d: %v", status, err)
		srv.Close()
	}
}

func TestGateway_RequestConfirmation_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "", time.Second, nil, zerolog.Nop())
	_, err := g.RequestConfirmation(context.Background(), testMessage())
	assert.True(t, apperror.Is(err, "GW_001"))
}

func TestGateway_RequestConfirmation_TransportError(t *testing.T) {
	g := NewGateway("http://gateway.invalid", "", time.Second, &failingHTTPClient{err: errors.New("connection reset")}, zerolog.Nop())

	_, err := g.RequestConfirmation(context.Background(), testMessage())
	assert.True(t, apperror.Is(err, "GW_001"))
}

func TestGateway_RequestConfirmation_NoWebhookHeaderWhenUnset(t *testing.T) {
	var header []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Values(WebhookHeader)
		_, _ = w.Write([]byte(`{"result":{"data":{"transactionId":12,"transactionStatus":"PENDING"}}}`))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "", time.Second, nil, zerolog.Nop())
	verdict, err := g.RequestConfirmation(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, domain.TransactionStatusPending, verdict.Status)
}

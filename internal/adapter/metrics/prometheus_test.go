package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet-settlement/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.ObserveTransition(domain.TransactionStatusPending, domain.TransactionStatusGateway)
	r.ObserveTransition(domain.TransactionStatusPending, domain.TransactionStatusGateway)
	r.ObserveTransition(domain.TransactionStatusGateway, domain.TransactionStatusCompleted)
	r.ObserveSettlement("queue", "dispatched")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.transitions.WithLabelValues("PENDING", "GATEWAY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("GATEWAY", "COMPLETED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.settlements.WithLabelValues("queue", "dispatched")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.settlements.WithLabelValues("gateway", "error")))
}

func TestRecorder_Middleware(t *testing.T) {
	r := NewRecorder()
	router := gin.New()
	router.Use(r.Middleware())
	router.GET("/api/v1/wallet/:tokenId", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/wallet/a", "/api/v1/wallet/b", "/nope"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "/api/v1/wallet/:tokenId", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.latency))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveSettlement("gateway", "completed")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `wallet_settlement_settlement_requests_total{channel="gateway",outcome="completed"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

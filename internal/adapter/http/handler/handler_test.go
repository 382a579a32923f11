package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wallet-settlement/internal/adapter/http/dto"
	"wallet-settlement/internal/adapter/metrics"
	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/internal/core/ports/mocks"
	"wallet-settlement/internal/service"
	"wallet-settlement/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testToken = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func jsonRequest(method, path string, v interface{}) *http.Request {
	var body []byte
	switch b := v.(type) {
	case string:
		body = []byte(b)
	default:
		body, _ = json.Marshal(v)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Wallet Handler Tests ---

func TestWalletCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().CreateWallet(gomock.Any(), ports.CreateWalletRequest{
		CardNumber: "4111111111111111",
		Currency:   domain.CurrencyEUR,
		Balance:    2500,
	}).Return(&domain.Wallet{ID: 1, TokenID: testToken, Balance: 2500, Currency: domain.CurrencyEUR}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/wallet", dto.CreateWalletRequest{
		CardNumber: "4111111111111111",
		Currency:   "eur",
		Balance:    2500,
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, testToken, data["tokenId"])
}

func TestWalletCreate_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"short card", `{"cardNumber":"4111","currency":"USD"}`},
		{"unknown currency", `{"cardNumber":"4111111111111111","currency":"JPY"}`},
		{"negative balance", `{"cardNumber":"4111111111111111","currency":"USD","balance":-5}`},
		{"malformed json", `{"cardNumber":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(http.MethodPost, "/api/v1/wallet", tt.body)

			h.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "TRX_001", decode(t, w)["error_code"])
		})
	}
}

func TestWalletCreate_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrWalletExists())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/wallet", `{"cardNumber":"4111111111111111","currency":"USD"}`)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "WAL_005", decode(t, w)["error_code"])
}

func TestWalletList(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().ListWallets(gomock.Any()).Return([]domain.Wallet{
		{ID: 1, TokenID: "a", Currency: domain.CurrencyUSD},
		{ID: 2, TokenID: "b", Currency: domain.CurrencyPLN},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["elements"])
	assert.Len(t, data["data"], 2)
}

func TestWalletList_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().ListWallets(gomock.Any()).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)

	h.List(c)

	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["elements"])
	assert.Equal(t, []interface{}{}, data["data"])
}

func TestWalletGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().Resolve(gomock.Any(), "missing").Return(nil, apperror.ErrWalletNotFound())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/wallet/missing", nil)
	c.Params = gin.Params{{Key: "tokenId", Value: "missing"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_001", decode(t, w)["error_code"])
}

func TestWalletDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().DeleteWallet(gomock.Any(), testToken).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/wallet/"+testToken, nil)
	c.Params = gin.Params{{Key: "tokenId", Value: testToken}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestWalletDelete_InUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().DeleteWallet(gomock.Any(), testToken).Return(apperror.ErrWalletInUse())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/wallet/"+testToken, nil)
	c.Params = gin.Params{{Key: "tokenId", Value: testToken}}

	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "WAL_006", decode(t, w)["error_code"])
}

func TestWalletUpdateBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	usd := domain.CurrencyUSD
	// A currency field in the body never reaches the service.
	mockWallet.EXPECT().ApplyDelta(gomock.Any(), testToken, int64(-300), nil).Return(&domain.FundsInWallet{
		TokenID: testToken, OldBalance: 1000, CurrentBalance: 700, Currency: usd,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPatch, "/api/v1/wallet/update",
		`{"tokenId":"`+testToken+`","amount":-300,"currency":"PLN"}`)

	h.UpdateBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1000), data["oldBalance"])
	assert.Equal(t, float64(700), data["currentBalance"])
}

func TestWalletUpdateBalance_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().ApplyDelta(gomock.Any(), testToken, int64(-5000), nil).Return(nil, apperror.ErrInsufficientFunds())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPatch, "/api/v1/wallet/update", `{"tokenId":"`+testToken+`","amount":-5000}`)

	h.UpdateBalance(c)

	assert.Equal(t, "TRX_008", decode(t, w)["error_code"])
}

func TestWalletExchange_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet)

	mockWallet.EXPECT().Exchange(gomock.Any(), testToken, domain.CurrencyEUR).Return(&domain.ExchangeAttempt{
		FromCurrency: domain.CurrencyUSD,
		NewCurrency:  domain.CurrencyEUR,
		ExchangeRate: decimal.RequireFromString("0.92"),
		Amount:       920,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/wallet/exchange?tokenId="+testToken+"&targetCurrency=eur", nil)

	h.Exchange(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "EUR", data["newCurrency"])
	assert.Equal(t, float64(920), data["amount"])
}

func TestWalletExchange_MissingQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/wallet/exchange?tokenId="+testToken, nil)

	h.Exchange(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Transaction Handler Tests ---

func TestTransactionCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	key := "key-1"
	mockTx.EXPECT().Create(gomock.Any(), ports.CreateTransactionRequest{
		TokenID:        testToken,
		TargetCurrency: domain.CurrencyUSD,
		Amount:         500,
		IdempotencyKey: &key,
	}).Return(&domain.FundsInWallet{TokenID: testToken, OldBalance: 1000, CurrentBalance: 1500, Currency: domain.CurrencyUSD}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/transaction", dto.CreateTransactionRequest{
		TokenID: testToken, Currency: "USD", Amount: 500,
	})
	c.Request.Header.Set(HeaderIdempotencyKey, key)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1500), data["currentBalance"])
}

func TestTransactionCreate_MissingIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewTransactionHandler(mocks.NewMockTransactionService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/transaction", `{"tokenId":"abc","currency":"USD","amount":5}`)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TRX_007", decode(t, w)["error_code"])
}

func TestTransactionCreate_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrDuplicateTransaction())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/transaction", `{"tokenId":"abc","currency":"USD","amount":5}`)
	c.Request.Header.Set(HeaderIdempotencyKey, "k")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "TRX_002", decode(t, w)["error_code"])
}

func TestTransactionComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().Complete(gomock.Any(), int64(3), domain.TransactionStatusPending).Return([]domain.SettlementResult{
		{TransactionID: 10, Status: domain.TransactionStatusCompleted},
		{TransactionID: 11, Status: domain.TransactionStatusFailed, Reason: "insufficient funds"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transaction/complete/3", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "3"}}

	h.Complete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["elements"])
	items := data["data"].([]interface{})
	assert.Equal(t, "FAILED", items[1].(map[string]interface{})["transactionStatus"])
}

func TestTransactionComplete_InvalidWalletID(t *testing.T) {
	for _, v := range []string{"abc", "0", "-4"} {
		ctrl := gomock.NewController(t)
		h := NewTransactionHandler(mocks.NewMockTransactionService(ctrl))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transaction/complete/"+v, nil)
		c.Params = gin.Params{{Key: "walletId", Value: v}}

		h.Complete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, v)
	}
}

func TestTransactionComplete_GatewayDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().Complete(gomock.Any(), int64(3), domain.TransactionStatusPending).
		Return(nil, apperror.ErrBadGateway(errors.New("connection refused")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transaction/complete/3", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "3"}}

	h.Complete(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "GW_001", decode(t, w)["error_code"])
}

func TestTransactionList_StatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	gateway := domain.TransactionStatusGateway
	mockTx.EXPECT().ListTransactions(gomock.Any(), int64(5), &gateway).Return([]domain.Transaction{
		{ID: 1, WalletID: 5, Status: gateway},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/transaction/complete/5?status=gateway", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "5"}}

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["elements"])
}

func TestTransactionList_NoFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().ListTransactions(gomock.Any(), int64(5), nil).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/transaction/complete/5", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "5"}}

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTransactionList_BadStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewTransactionHandler(mocks.NewMockTransactionService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/transaction/complete/5?status=settled", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "5"}}

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactionCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().Cancel(gomock.Any(), int64(9)).Return(&domain.Transaction{ID: 9, Status: domain.TransactionStatusCancelled}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/transaction/cancel/9", nil)
	c.Params = gin.Params{{Key: "transactionId", Value: "9"}}

	h.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "CANCELLED", data["status"])
}

func TestTransactionCancel_AlreadyCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().Cancel(gomock.Any(), int64(9)).Return(nil, apperror.ErrAlreadyCancelled())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/v1/transaction/cancel/9", nil)
	c.Params = gin.Params{{Key: "transactionId", Value: "9"}}

	h.Cancel(c)

	assert.Equal(t, "TRX_006", decode(t, w)["error_code"])
}

func TestTransactionDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().Dispatch(gomock.Any(), int64(12)).Return(&domain.SettlementResult{
		TransactionID: 12, Status: domain.TransactionStatusGateway,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transaction/12/dispatch", nil)
	c.Params = gin.Params{{Key: "transactionId", Value: "12"}}

	h.Dispatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "GATEWAY", data["transactionStatus"])
}

func TestTransactionWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().ApplyExternalUpdate(gomock.Any(), int64(7), domain.TransactionStatusCompleted).Return(&domain.SettlementResult{
		TransactionID: 7,
		Status:        domain.TransactionStatusCompleted,
		Funds:         &domain.FundsInWallet{OldBalance: 100, CurrentBalance: 150},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/transaction/webhook",
		`{"id":7,"status":"completed","amount":50,"currency":"USD","originCreatedAt":"2026-01-02T03:04:05Z"}`)

	h.Webhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "COMPLETED", data["transactionStatus"])
}

func TestTransactionWebhook_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{"status":"COMPLETED"}`},
		{"unknown status", `{"id":7,"status":"SETTLED"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := NewTransactionHandler(mocks.NewMockTransactionService(ctrl))

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(http.MethodPost, "/api/v1/transaction/webhook", tt.body)

			h.Webhook(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTransactionWebhook_StatusAlreadySet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(mockTx)

	mockTx.EXPECT().ApplyExternalUpdate(gomock.Any(), int64(7), domain.TransactionStatusFailed).
		Return(nil, apperror.ErrStatusAlreadySet("FAILED"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/transaction/webhook", `{"id":7,"status":"FAILED"}`)

	h.Webhook(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "TRX_003", decode(t, w)["error_code"])
}

// --- Health Check Tests ---

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	pg := mocks.NewMockHealthChecker(ctrl)
	nats := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	pg.EXPECT().Name().Return("postgresql").AnyTimes()
	nats.EXPECT().Ping(gomock.Any()).Return(errors.New("no responders"))
	nats.EXPECT().Name().Return("nats").AnyTimes()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(pg, nats)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "healthy", deps["postgresql"].(map[string]interface{})["status"])
	assert.Equal(t, "no responders", deps["nats"].(map[string]interface{})["error"])
}

// --- Router Tests ---

func TestSetupRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockWallet := mocks.NewMockWalletService(ctrl)
	mockTx := mocks.NewMockTransactionService(ctrl)

	router := SetupRouter(RouterDeps{
		WalletSvc: mockWallet,
		TxSvc:     mockTx,
		Metrics:   metrics.NewRecorder(),
		Logger:    zerolog.Nop(),
	})

	mockWallet.EXPECT().Resolve(gomock.Any(), testToken).Return(&domain.Wallet{ID: 1, TokenID: testToken}, nil)
	mockTx.EXPECT().Dispatch(gomock.Any(), int64(4)).Return(&domain.SettlementResult{TransactionID: 4}, nil)
	mockTx.EXPECT().ApplyExternalUpdate(gomock.Any(), int64(4), domain.TransactionStatusFailed).
		Return(&domain.SettlementResult{TransactionID: 4, Status: domain.TransactionStatusFailed}, nil)

	tests := []struct {
		req  *http.Request
		code int
	}{
		{httptest.NewRequest(http.MethodGet, "/api/v1/wallet/"+testToken, nil), http.StatusOK},
		{httptest.NewRequest(http.MethodPost, "/api/v1/transaction/4/dispatch", nil), http.StatusOK},
		{jsonRequest(http.MethodPost, "/api/v1/transaction/webhook", `{"id":4,"status":"FAILED"}`), http.StatusOK},
		{httptest.NewRequest(http.MethodGet, "/health", nil), http.StatusOK},
		{httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil), http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, tt.req)
		assert.Equal(t, tt.code, w.Code, tt.req.URL.Path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/v1/transaction/:transactionId/dispatch"`)
}

func TestSetupRouter_SignedWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mocks.NewMockTransactionService(ctrl)
	signer := service.NewHMACSigner("hook-secret")

	router := SetupRouter(RouterDeps{
		WalletSvc: mocks.NewMockWalletService(ctrl),
		TxSvc:     mockTx,
		Verifier:  signer,
		Logger:    zerolog.Nop(),
	})

	body := `{"id":4,"status":"COMPLETED"}`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPost, "/api/v1/transaction/webhook", body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mockTx.EXPECT().ApplyExternalUpdate(gomock.Any(), int64(4), domain.TransactionStatusCompleted).
		Return(&domain.SettlementResult{TransactionID: 4, Status: domain.TransactionStatusCompleted}, nil)

	req := jsonRequest(http.MethodPost, "/api/v1/transaction/webhook", body)
	req.Header.Set("X-Signature", signer.Sign([]byte(body)))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"transactionStatus":"COMPLETED"`))
}

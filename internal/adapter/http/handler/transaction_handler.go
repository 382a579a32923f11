package handler

import (
	"strconv"
	"strings"

	"wallet-settlement/internal/adapter/http/dto"
	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/pkg/apperror"
	"wallet-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey carries the client's idempotency key on creation.
const HeaderIdempotencyKey = "Idempotency-Key"

// TransactionHandler handles transaction lifecycle endpoints.
type TransactionHandler struct {
	txSvc ports.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txSvc ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{txSvc: txSvc}
}

// Create handles POST /api/v1/transaction.
func (h *TransactionHandler) Create(c *gin.Context) {
	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if key == "" {
		response.Error(c, apperror.ErrMissingIdempotencyKey())
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		response.Error(c, apperror.ErrInvalidCurrency(req.Currency))
		return
	}

	funds, err := h.txSvc.Create(c.Request.Context(), ports.CreateTransactionRequest{
		TokenID:        req.TokenID,
		TargetCurrency: currency,
		Amount:         req.Amount,
		ClientDate:     req.ClientTransactionDate,
		IdempotencyKey: &key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, funds)
}

// Complete handles POST /api/v1/transaction/complete/:walletId. Only
// PENDING transactions are settled.
func (h *TransactionHandler) Complete(c *gin.Context) {
	walletID, ok := int64Param(c, "walletId")
	if !ok {
		return
	}

	results, err := h.txSvc.Complete(c.Request.Context(), walletID, domain.TransactionStatusPending)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, results)
}

// List handles GET /api/v1/transaction/complete/:walletId.
func (h *TransactionHandler) List(c *gin.Context) {
	walletID, ok := int64Param(c, "walletId")
	if !ok {
		return
	}

	var q dto.StatusQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var filter *domain.TransactionStatus
	if q.Status != nil {
		st, err := domain.ParseTransactionStatus(*q.Status)
		if err != nil {
			response.Error(c, apperror.Validation("unknown transaction status"))
			return
		}
		filter = &st
	}

	txns, err := h.txSvc.ListTransactions(c.Request.Context(), walletID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, txns)
}

// Dispatch handles POST /api/v1/transaction/:transactionId/dispatch.
func (h *TransactionHandler) Dispatch(c *gin.Context) {
	id, ok := int64Param(c, "transactionId")
	if !ok {
		return
	}

	result, err := h.txSvc.Dispatch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Cancel handles PATCH /api/v1/transaction/cancel/:transactionId.
func (h *TransactionHandler) Cancel(c *gin.Context) {
	id, ok := int64Param(c, "transactionId")
	if !ok {
		return
	}

	txn, err := h.txSvc.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txn)
}

// Webhook handles POST /api/v1/transaction/webhook, the gateway's deferred
// verdict callback.
func (h *TransactionHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	status, err := domain.ParseTransactionStatus(req.Status)
	if err != nil {
		response.Error(c, apperror.Validation("unknown transaction status"))
		return
	}

	result, err := h.txSvc.ApplyExternalUpdate(c.Request.Context(), req.ID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		response.Error(c, apperror.Validation(name+" must be a positive integer"))
		return 0, false
	}
	return v, true
}

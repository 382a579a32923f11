package handler

import (
	"wallet-settlement/internal/adapter/http/dto"
	"wallet-settlement/internal/core/domain"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/pkg/apperror"
	"wallet-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Create handles POST /api/v1/wallet.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
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

	wallet, err := h.walletSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		CardNumber: req.CardNumber,
		Currency:   currency,
		Balance:    req.Balance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.TokenResponse{TokenID: wallet.TokenID})
}

// List handles GET /api/v1/wallet.
func (h *WalletHandler) List(c *gin.Context) {
	wallets, err := h.walletSvc.ListWallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, wallets)
}

// Get handles GET /api/v1/wallet/:tokenId.
func (h *WalletHandler) Get(c *gin.Context) {
	wallet, err := h.walletSvc.Resolve(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wallet)
}

// Delete handles DELETE /api/v1/wallet/:tokenId.
func (h *WalletHandler) Delete(c *gin.Context) {
	if err := h.walletSvc.DeleteWallet(c.Request.Context(), c.Param("tokenId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateBalance handles PATCH /api/v1/wallet/update.
func (h *WalletHandler) UpdateBalance(c *gin.Context) {
	var req dto.UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	// Currency only changes through an applied exchange transaction.
	funds, err := h.walletSvc.ApplyDelta(c.Request.Context(), req.TokenID, req.Amount, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, funds)
}

// Exchange handles PATCH /api/v1/wallet/exchange. It quotes the conversion
// without moving funds.
func (h *WalletHandler) Exchange(c *gin.Context) {
	var q dto.ExchangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&q)

	target, err := domain.ParseCurrency(q.TargetCurrency)
	if err != nil {
		response.Error(c, apperror.ErrInvalidCurrency(q.TargetCurrency))
		return
	}

	attempt, err := h.walletSvc.Exchange(c.Request.Context(), q.TokenID, target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, attempt)
}

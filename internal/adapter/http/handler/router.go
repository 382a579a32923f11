package handler

import (
	"wallet-settlement/internal/adapter/http/middleware"
	"wallet-settlement/internal/adapter/metrics"
	"wallet-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	TxSvc          ports.TransactionService
	RateLimitStore ports.RateLimitStore    // nil = rate limiting disabled
	Verifier       ports.SignatureVerifier // nil = unsigned webhooks accepted
	HealthCheckers []ports.HealthChecker
	Metrics        *metrics.Recorder // nil = no /metrics endpoint
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallet := v1.Group("/wallet", rl("wallet"))
	{
		wallet.POST("", walletHandler.Create)
		wallet.GET("", walletHandler.List)
		wallet.PATCH("/exchange", walletHandler.Exchange)
		wallet.PATCH("/update", walletHandler.UpdateBalance)
		wallet.GET("/:tokenId", walletHandler.Get)
		wallet.DELETE("/:tokenId", walletHandler.Delete)
	}

	txHandler := NewTransactionHandler(deps.TxSvc)
	transaction := v1.Group("/transaction")
	{
		transaction.POST("", rl("transaction"), txHandler.Create)
		transaction.POST("/complete/:walletId", rl("transaction_complete"), txHandler.Complete)
		transaction.GET("/complete/:walletId", rl("transaction"), txHandler.List)
		transaction.PATCH("/cancel/:transactionId", rl("transaction"), txHandler.Cancel)
		transaction.POST("/:transactionId/dispatch", rl("transaction"), txHandler.Dispatch)
		transaction.POST("/webhook", rl("webhook"), middleware.WebhookSignature(deps.Verifier, deps.Logger), txHandler.Webhook)
	}

	return r
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-settlement/config"
	"wallet-settlement/internal/adapter/exchangerate"
	httpHandler "wallet-settlement/internal/adapter/http/handler"
	natsAdapter "wallet-settlement/internal/adapter/messaging/nats"
	"wallet-settlement/internal/adapter/metrics"
	"wallet-settlement/internal/adapter/settlement"
	"wallet-settlement/internal/adapter/storage/memory"
	pgStorage "wallet-settlement/internal/adapter/storage/postgres"
	redisStorage "wallet-settlement/internal/adapter/storage/redis"
	"wallet-settlement/internal/core/ports"
	"wallet-settlement/internal/service"
	"wallet-settlement/pkg/logger"

	"github.com/gin-gonic/gin"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// storage bundles the repositories of whichever driver is configured.
type storage struct {
	wallets      ports.WalletRepository
	transactions ports.TransactionRepository
	transactor   ports.DBTransactor
	health       ports.HealthChecker
	close        func()
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("settlement", cfg.Settlement.Mode).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting wallet settlement service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise storage")
	}
	defer store.close()

	checkers := []ports.HealthChecker{store.health}

	// Redis is optional: without it idempotency relies on the store alone
	// and rate limiting is off.
	var (
		claimCache ports.IdempotencyCache
		rateStore  ports.RateLimitStore
	)
	if cfg.Redis.Enabled() {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		claimCache = redisStorage.NewIdempotencyCache(rdb)
		rateStore = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	recorder := metrics.NewRecorder()

	var (
		channel  ports.SettlementChannel
		nc       *natsgo.Conn
		js       natsgo.JetStreamContext
		consumer *natsAdapter.Consumer
		fetcher  *natsAdapter.PullFetcher
	)
	if cfg.Settlement.Mode == config.SettlementQueue {
		nc, err = natsAdapter.Connect(cfg.NATS, logger.Component(log, "nats"))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer func() { _ = nc.Drain() }()

		js, err = nc.JetStream()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open JetStream context")
		}
		if err := natsAdapter.EnsureStream(ctx, js, cfg.NATS); err != nil {
			log.Fatal().Err(err).Msg("Failed to provision settlement stream")
		}
		channel = natsAdapter.NewChannel(js, cfg.NATS.RequestSubject, logger.Component(log, "queue"))
		checkers = append(checkers, natsAdapter.NewHealthCheck(nc))
	} else {
		channel = settlement.NewGateway(
			cfg.Gateway.URL,
			cfg.Gateway.WebhookURL,
			cfg.Gateway.Timeout,
			nil,
			logger.Component(log, "gateway"),
		)
	}

	tokenizer := service.NewHMACSigner(cfg.Tokenization.Key)
	rates := exchangerate.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.APIKey, cfg.Exchange.Timeout, nil, logger.Component(log, "exchangerate"))

	walletSvc := service.NewWalletService(store.wallets, store.transactor, rates, tokenizer, log)
	guard := service.NewIdempotencyGuard(store.transactions, claimCache, cfg.Redis.ClaimTTL, log)
	txSvc := service.NewTransactionService(store.transactions, walletSvc, store.transactor, guard, channel, recorder, log)

	if js != nil {
		fetcher, err = natsAdapter.NewPullFetcher(js, cfg.NATS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to subscribe to settlement responses")
		}
		consumer = natsAdapter.NewConsumer(fetcher, txSvc, js, cfg.NATS.AckSubject, cfg.NATS.FetchBatch, logger.Component(log, "consumer"))
	}

	var verifier ports.SignatureVerifier
	if cfg.Webhook.Secret != "" {
		verifier = service.NewHMACSigner(cfg.Webhook.Secret)
	} else {
		log.Warn().Msg("webhook.secret not set, webhook signatures are not checked")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		TxSvc:          txSvc,
		RateLimitStore: rateStore,
		Verifier:       verifier,
		HealthCheckers: checkers,
		Metrics:        recorder,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if consumer != nil {
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
	if fetcher != nil {
		if err := fetcher.Drain(); err != nil {
			log.Warn().Err(err).Msg("draining settlement subscription")
		}
	}

	log.Info().Msg("Server exited")
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("using in-memory storage, data is lost on exit")
		mem := memory.NewStore()
		return &storage{
			wallets:      mem.Wallets(),
			transactions: mem.Transactions(),
			transactor:   mem,
			health:       mem,
			close:        func() {},
		}, nil
	}

	if err := pgStorage.RunMigrations(ctx, cfg.Database.DSN(), "up", log); err != nil {
		return nil, err
	}
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	log.Info().Msg("PostgreSQL connected")

	return &storage{
		wallets:      pgStorage.NewWalletRepo(pool),
		transactions: pgStorage.NewTransactionRepo(pool),
		transactor:   pgStorage.NewTransactor(pool),
		health:       pgStorage.NewHealthCheck(pool),
		close:        pool.Close,
	}, nil
}

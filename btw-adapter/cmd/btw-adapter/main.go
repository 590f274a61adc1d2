package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/api"
	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/btw"
	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/metrics"
	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/publisher"
	internalsecrets "github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/secrets"
	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/security"
	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/pkg/config"
	"github.com/Checker-Finance/connectivity-adapters/internal/rate"
	"github.com/Checker-Finance/connectivity-adapters/internal/store"
	"github.com/Checker-Finance/connectivity-adapters/pkg/logger"
	"github.com/Checker-Finance/connectivity-adapters/pkg/secrets"
	"github.com/Checker-Finance/connectivity-adapters/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [btw-adapter]...")
	logg.Info("connection to DSN: ", utils.MaskDSN(cfg.DatabaseURL))

	// --- Vendor credentials ---
	stopCleaner := make(chan struct{})
	var creds btw.CredentialsProvider
	if cfg.UseEnvCredentials() {
		creds = btw.StaticCredentials{ConsumerKey: cfg.BTWConsumerKey, ConsumerSecret: cfg.BTWConsumerSecret}
		logg.Infow("using BTW credentials from environment", "consumer_key", utils.MaskSecret(cfg.BTWConsumerKey))
	} else {
		awsProvider, err := secrets.NewAWSProvider(ctx, cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		credCache := secrets.NewCache[btw.Credentials](cfg.CacheTTL)
		credCache.OnAccess(metrics.IncCacheHit)
		go credCache.StartCleaner(cfg.CleanupFreq, stopCleaner)

		resolver := internalsecrets.NewCredentialResolver(logg.Desugar(), *cfg, awsProvider, credCache)
		creds = resolver
		logg.Infow("using BTW credentials from AWS Secrets Manager", "secret", resolver.SecretName())
	}

	// --- Store (Redis token cache + Postgres security rates) ---
	st, err := store.NewHybrid(store.RedisConfig{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPass,
	}, cfg.DatabaseURL, store.PGPoolConfig{
		MaxConns:          int32(cfg.PGMaxConns),
		MinConns:          int32(cfg.PGMinConns),
		MaxConnLifetime:   cfg.PGMaxConnLifetime,
		MaxConnIdleTime:   cfg.PGMaxConnIdleTime,
		HealthCheckPeriod: cfg.PGHealthCheckPeriod,
	}, cfg.RateCacheTTL, logger.Named("store"))
	if err != nil {
		logg.Fatalw("failed to init store", "error", err)
	}

	// --- NATS + publisher (optional) ---
	var (
		nc     *nats.Conn
		pub    *publisher.Publisher
		events btw.EventPublisher
	)
	if cfg.PublishEvents && cfg.NATSURL != "" {
		nc, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.ServiceName))
		if err != nil {
			logg.Fatalw("failed to connect to NATS", "error", err)
		}
		pub, err = publisher.New(nc, cfg.EventSubject, cfg.EventStream, cfg.ServiceName, logger.Named("publisher"))
		if err != nil {
			logg.Fatalw("failed to init publisher", "error", err)
		}
		events = pub
	}

	// --- Rate limiter ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: 1,
		Burst:             1,
		Cooldown:          1 * time.Second,
	})
	rateMgr.Configure(btw.QuoteRateLimitID, rate.Config{
		RequestsPerSecond: cfg.BTWRateRPS,
		Burst:             cfg.BTWRateBurst,
		Cooldown:          1 * time.Second,
	})

	// --- BTW auth + client ---
	tokenMgr := btw.NewTokenManager(logger.Named("btw.auth"), cfg.BTWTokenURL, creds, st, cfg.BTWTokenCacheKey)
	btwClient := btw.NewClient(logger.Named("btw.client"), btw.ClientConfig{
		BaseURL:     cfg.BTWBaseURL,
		Timeout:     cfg.BTWTimeout,
		RetryMax:    cfg.BTWRetryMax,
		AuthRetries: cfg.BTWAuthRetries,
	}, tokenMgr, rateMgr)

	// --- Security pricing + quote service ---
	pricer := security.NewPricer(logger.Named("security"), st)
	quoteSvc := btw.NewService(logger.Named("btw"), btwClient, pricer, events)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})
	api.RegisterRoutes(app, nc, st, api.NewQuoteHandler(logger.Named("api"), quoteSvc, cfg.QuoteTimeout))

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[btw-adapter] running",
		"env", cfg.Env,
		"btw_base_url", cfg.BTWBaseURL,
		"events", events != nil)

	<-ctx.Done()
	logg.Info("shutting down [btw-adapter]...")

	close(stopCleaner)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if pub != nil {
		pub.Close()
	}
	if err := st.Close(); err != nil {
		logg.Warnw("store.close_failed", "error", err)
	}
}

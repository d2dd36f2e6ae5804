package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/Checker-Finance/hyperliquid-adapter/internal/api"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/assets"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/httpclient"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/hyperliquid"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/orders"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/portfolio"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/publisher"
	"github.com/Checker-Finance/hyperliquid-adapter/internal/rate"
	internalsecrets "github.com/Checker-Finance/hyperliquid-adapter/internal/secrets"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/config"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/logger"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/secrets"
	"github.com/Checker-Finance/hyperliquid-adapter/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [hyperliquid-adapter]...")

	// --- AWS Secrets Manager provider ---
	awsProvider, err := secrets.NewAWSProvider(cfg.AWSRegion)
	if err != nil {
		logg.Warnw("failed to create AWS Secrets Manager provider, using environment signer", "error", err)
		awsProvider = nil
	}

	// --- Signer resolver (secret cached in-memory) ---
	signerCache := secrets.NewCache[internalsecrets.SignerConfig](cfg.CacheTTL)
	stopCleaner := make(chan struct{})
	go signerCache.StartCleaner(cfg.CleanupFreq, stopCleaner)

	resolver := internalsecrets.NewResolver(logg.Desugar(), cfg.Env, awsProvider, signerCache)
	signer, err := resolver.Resolve(ctx)
	if err != nil {
		logg.Fatalw("failed to resolve signer", "error", err)
	}

	// --- Connect to NATS ---
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logg.Fatalw("failed to connect to NATS", "error", err)
	}

	// --- Publisher ---
	pub, err := publisher.New(nc, cfg.ServiceName)
	if err != nil {
		logg.Fatalw("failed to init publisher", "error", err)
	}
	defer pub.Close()

	// --- Rate limiter ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: cfg.RatePerSecond,
		Burst:             cfg.RateBurst,
	})

	// --- Venue clients ---
	exec := httpclient.New(
		logg.Desugar(),
		rateMgr,
		&http.Client{Timeout: cfg.InfoTimeout},
		0,
		cfg.Venue,
		nil,
	)
	infoClient := hyperliquid.NewInfoClient(exec, cfg.VenueBaseURL, cfg.InfoTimeout, cfg.MetaTimeout, logg.Desugar())

	exchangeClient, err := hyperliquid.NewExchangeClient(signer.PrivateKey, cfg.VenueBaseURL, infoClient, rateMgr, logg.Desugar())
	if err != nil {
		logg.Fatalw("failed to init exchange client", "error", err)
	}
	logg.Infow("signer ready", "account", utils.MaskAddress(exchangeClient.AccountAddress()))

	// --- Asset directory builder ---
	overrides, err := assets.LoadOverrides(cfg.SymbolOverridesPath)
	if err != nil {
		logg.Fatalw("failed to load symbol overrides", "error", err)
	}
	directoryBuilder := assets.NewBuilder(infoClient, overrides, cfg.QuoteCurrency, logg.Desugar())

	// --- Services ---
	portfolioSvc := portfolio.NewService(infoClient, directoryBuilder, cfg.QuoteCurrency, logg.Desugar())

	orderExecutor := orders.NewExecutor(exchangeClient, cfg.OrderMaxAttempts, cfg.OrderRetryDelay, logg.Desugar())
	orderSvc := orders.NewService(orderExecutor, infoClient, directoryBuilder, pub, logg.Desugar())

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	handler := api.NewHandler(logg.Desugar(), portfolioSvc, orderSvc, cfg.WalletPresets)
	api.RegisterRoutes(app, nc, handler)

	// Start HTTP server
	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[hyperliquid-adapter] running",
		"nats", cfg.NATSURL,
		"env", cfg.Env,
		"venue_url", cfg.VenueBaseURL)

	<-ctx.Done()
	logg.Info("shutting down [hyperliquid-adapter]...")

	close(stopCleaner)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if err := nc.Drain(); err != nil {
		logg.Warnw("nats.drain_failed", "error", err)
	}
}

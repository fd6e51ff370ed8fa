package app

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"checkout-svc/config"
	controller "checkout-svc/internal/controller/http"
	"checkout-svc/internal/controller/http/handlers"
	"checkout-svc/internal/domain/checkout"
	extkafka "checkout-svc/internal/external/kafka"
	extopensearch "checkout-svc/internal/external/opensearch"
	"checkout-svc/internal/external/stripe"
	idempotency_repo "checkout-svc/internal/repo/idempotency"
	"checkout-svc/pkg/health"
	"checkout-svc/pkg/logger"
	"checkout-svc/pkg/postgres"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

func Run(cfg config.Config) {
	l := logger.New(cfg.LogLevel)

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := NewGinEngine(l)

	var checkers []health.Checker

	// Idempotency store: Postgres when configured, in-memory fallback.
	var store checkout.Store
	if cfg.PgURL != "" {
		pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
		}
		defer pool.Close()

		if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
			l.Fatal(fmt.Errorf("app - Run - ApplyMigrations: %w", err))
		}

		store = idempotency_repo.NewPgStore(pool)
		checkers = append(checkers, health.NewPostgresChecker(pool.Pool))
	} else {
		l.Info("PG_URL not set, using in-memory idempotency store")
		store = idempotency_repo.NewMemoryStore()
	}

	// Session event sinks, all optional.
	var sinks checkout.MultiSink
	if len(cfg.KafkaBrokers) > 0 {
		publisher := extkafka.NewPublisher(l, cfg.KafkaBrokers, cfg.KafkaSessionsTopic)
		defer publisher.Close()

		sinks = append(sinks, extkafka.NewSessionSink(publisher))
		checkers = append(checkers, health.NewKafkaChecker(cfg.KafkaBrokers))
	}
	if len(cfg.OpensearchUrls) > 0 {
		osSink, err := extopensearch.NewSessionSink(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexSessions)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - opensearch.NewSessionSink: %w", err))
		}
		sinks = append(sinks, osSink)
	}
	var events checkout.EventSink = checkout.NoopSink{}
	if len(sinks) > 0 {
		events = sinks
	}

	stripeClient := stripe.New(
		cfg.StripeBaseURL,
		cfg.StripeAPIKey,
		&http.Client{Timeout: cfg.HTTPStripeClientTimeout},
	)

	contract := checkout.NewContract(cfg.RequiredFields, cfg.ItemsSnapshotMax)
	service := checkout.NewService(contract, checkout.SessionConfig{
		Currency:             cfg.Currency,
		ProductName:          cfg.ProductName,
		SuccessURL:           cfg.SuccessURL,
		CancelURL:            cfg.CancelURL,
		AllowedShipCountries: cfg.AllowedShipCountries,
		IdempotencyTTL:       cfg.IdempotencyTTL,
	}, stripeClient, store, events, l)

	checkoutHandler := handlers.NewCheckoutHandler(service)

	router := controller.NewRouter(checkoutHandler, health.NewRegistry(checkers...), cfg.CORSAllowOrigin)
	router.SetUp(engine)

	// Start HTTP server in a goroutine
	go func() {
		l.Info("Starting checkout HTTP server: port=%d", cfg.Port)
		if err := engine.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			l.Error("HTTP server error: error=%v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	l.Info("Shutting down checkout service gracefully...")
}

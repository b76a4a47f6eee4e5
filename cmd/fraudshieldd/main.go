package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/fraudshield/internal/application/usecase"
	"github.com/bibbank/fraudshield/internal/domain/port"
	"github.com/bibbank/fraudshield/internal/domain/service"
	"github.com/bibbank/fraudshield/internal/infrastructure/config"
	"github.com/bibbank/fraudshield/internal/infrastructure/memory"
	"github.com/bibbank/fraudshield/internal/infrastructure/messaging"
	"github.com/bibbank/fraudshield/internal/infrastructure/ml"
	"github.com/bibbank/fraudshield/internal/infrastructure/postgres"
	"github.com/bibbank/fraudshield/internal/infrastructure/telemetry"
	grpcpresentation "github.com/bibbank/fraudshield/internal/presentation/grpc"
	"github.com/bibbank/fraudshield/internal/presentation/rest"
	"github.com/bibbank/fraudshield/pkg/kafka"
	"github.com/bibbank/fraudshield/pkg/observability"
	pgpkg "github.com/bibbank/fraudshield/pkg/postgres"
)

const serviceName = "fraudshield"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting fraudshield",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"source", cfg.SourceDriver,
	)

	// Initialize tracing.
	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    cfg.OTLPInsecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())

	recorder, err := telemetry.NewRecorder(meterProvider)
	if err != nil {
		logger.Error("failed to create assessment recorder", "error", err)
		os.Exit(1)
	}

	// Load the scoring policy and classifier. Both are immutable from here on.
	policy := service.DefaultPolicy()
	if cfg.PolicyPath != "" {
		policy, err = config.LoadPolicy(cfg.PolicyPath)
		if err != nil {
			logger.Error("failed to load scoring policy", "path", cfg.PolicyPath, "error", err)
			os.Exit(1)
		}
	}

	forest, err := ml.LoadForest(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load classifier", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	logger.Info("classifier loaded",
		"path", cfg.ModelPath,
		"version", forest.Version(),
		"trees", forest.TreeCount(),
		"ml_scoring", string(policy.MLScoring),
	)

	riskScorer, err := service.NewRiskScorer(forest, policy)
	if err != nil {
		logger.Error("failed to create risk scorer", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	source, readiness, closeSource, err := newTransactionSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize transaction source", "driver", cfg.SourceDriver, "error", err)
		os.Exit(1)
	}
	defer closeSource()
	readiness["classifier"] = forest.Check

	publisher, closePublisher, err := newEventPublisher(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize event publisher", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	// Wire use cases.
	scoreTransactionUC := usecase.NewScoreTransaction(riskScorer, publisher, recorder, logger)
	scoreBatchUC := usecase.NewScoreBatch(source, service.NewBatchScorer(riskScorer, cfg.BatchConcurrency), recorder, logger)

	// gRPC server.
	grpcHandler := grpcpresentation.NewFraudShieldHandler(scoreTransactionUC, scoreBatchUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	router := rest.NewRouter(
		rest.NewScoringHandler(scoreTransactionUC, scoreBatchUC, logger),
		rest.NewHealthHandler(readiness, logger),
		metricsHandler,
		rest.RouterConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		},
		logger,
	)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("fraudshield started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down fraudshield")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("fraudshield stopped")
}

// newTransactionSource builds the configured batch source together with its
// readiness checks and a close function.
func newTransactionSource(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (port.TransactionSource, map[string]rest.ReadinessCheck, func(), error) {
	readiness := map[string]rest.ReadinessCheck{}

	if cfg.SourceDriver != config.SourcePostgres {
		readiness["source"] = func(context.Context) error { return nil }
		return memory.NewTransactionSource(memory.SampleTransactions()), readiness, func() {}, nil
	}

	if cfg.RunMigrations {
		version, err := pgpkg.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("database migrations applied", "version", version)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{URL: cfg.DatabaseURL, ApplicationName: serviceName})
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("connected to database")

	readiness["source"] = func(ctx context.Context) error {
		return pgpkg.HealthCheck(ctx, pool)
	}
	return postgres.NewTransactionSource(pool), readiness, pool.Close, nil
}

// newEventPublisher returns the Kafka publisher when enabled and a logging
// publisher otherwise.
func newEventPublisher(cfg *config.Config, logger *slog.Logger) (port.EventPublisher, func(), error) {
	if !cfg.KafkaEnabled {
		logger.Info("kafka disabled, domain events are logged only")
		return messaging.NewLogPublisher(logger), func() {}, nil
	}

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers:       cfg.KafkaBrokers,
		TLS:           cfg.KafkaTLS,
		SASLEnabled:   cfg.KafkaSASLMechanism != "",
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)

	return messaging.NewKafkaPublisher(producer, cfg.KafkaTopic, logger), func() {
		if err := producer.Close(); err != nil {
			logger.Error("failed to close kafka producer", "error", err)
		}
	}, nil
}

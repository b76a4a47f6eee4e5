// Command seed loads the sample transactions into PostgreSQL so the
// postgres transaction source has data to score.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bibbank/fraudshield/internal/infrastructure/config"
	"github.com/bibbank/fraudshield/internal/infrastructure/memory"
	"github.com/bibbank/fraudshield/internal/infrastructure/postgres"
	"github.com/bibbank/fraudshield/pkg/observability"
	pgpkg "github.com/bibbank/fraudshield/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger(observability.LogConfig{}).Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	version, err := pgpkg.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations applied", "version", version)

	dbCtx, dbCancel := context.WithTimeout(ctx, 30*time.Second)
	defer dbCancel()

	pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{URL: cfg.DatabaseURL, ApplicationName: "fraudshield-seed"})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	records := memory.SampleTransactions()
	accounts := make([]string, 0, len(records))
	for _, r := range records {
		accounts = append(accounts, r.AccountID())
	}

	// Re-seeding replaces the sample accounts rather than duplicating them.
	// Serializable keeps concurrent seed runs from interleaving.
	var removed int64
	err = pgpkg.WithTxOptions(dbCtx, pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(tx pgx.Tx) error {
		n, err := postgres.DeleteTransactions(dbCtx, tx, accounts)
		if err != nil {
			return err
		}
		removed = n
		return postgres.InsertTransactions(dbCtx, tx, records)
	})
	if err != nil {
		logger.Error("failed to seed transactions", "error", err)
		os.Exit(1)
	}

	logger.Info("sample transactions seeded", "inserted", len(records), "replaced", removed)
}

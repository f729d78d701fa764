// Command seed applies migrations and inserts the default subject
// catalog. The server does the same at startup when migrate_on_start is
// enabled; this binary exists for environments where the schema is
// managed out of band.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/knowtify/backend/internal/adapter/postgres"
	"github.com/knowtify/backend/internal/adapter/postgres/subject"
	"github.com/knowtify/backend/internal/app"
	"github.com/knowtify/backend/internal/config"
	"github.com/knowtify/backend/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(cfg.Database.DSN); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	subjects := subject.New(pool)
	seeded, err := subjects.Seed(ctx, domain.DefaultSubjects, func(name string) string {
		return "Subject: " + name
	})
	if err != nil {
		logger.Error("seed subjects", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeding complete", slog.Int("inserted", seeded))
}

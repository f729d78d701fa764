package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/knowtify/backend/internal/adapter/postgres"
	entryrepo "github.com/knowtify/backend/internal/adapter/postgres/entry"
	subjectrepo "github.com/knowtify/backend/internal/adapter/postgres/subject"
	topicrepo "github.com/knowtify/backend/internal/adapter/postgres/topic"
	userrepo "github.com/knowtify/backend/internal/adapter/postgres/user"
	jwtauth "github.com/knowtify/backend/internal/auth"
	"github.com/knowtify/backend/internal/config"
	"github.com/knowtify/backend/internal/domain"
	"github.com/knowtify/backend/internal/gemini"
	authsvc "github.com/knowtify/backend/internal/service/auth"
	"github.com/knowtify/backend/internal/service/report"
	"github.com/knowtify/backend/internal/service/study"
	"github.com/knowtify/backend/internal/transport/middleware"
	"github.com/knowtify/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and handlers, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	subjects := subjectrepo.New(pool)
	topics := topicrepo.New(pool)
	users := userrepo.New(pool)
	entries := entryrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	seeded, err := subjects.Seed(ctx, domain.DefaultSubjects, func(name string) string {
		return "Subject: " + name
	})
	if err != nil {
		return fmt.Errorf("seed subjects: %w", err)
	}
	if seeded > 0 {
		logger.Info("seeded default subjects", slog.Int("count", seeded))
	}

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	classifier := gemini.New(cfg.Gemini, logger)

	authService := authsvc.NewService(logger, users, jwtManager, cfg.Auth.BcryptCost)
	studyService := study.NewService(logger, users, subjects, topics, entries, classifier, txManager)
	reportService := report.NewService(logger, entries)

	handlers := rest.Handlers{
		Auth:    rest.NewAuthHandler(authService, logger),
		Entries: rest.NewEntryHandler(studyService, logger),
		Reports: rest.NewReportHandler(reportService, logger),
		Parse:   rest.NewParseHandler(),
		Health:  rest.NewHealthHandler(pool, BuildVersion()),
	}

	var authLimit middleware.Middleware
	var limiter *middleware.RateLimiter
	if cfg.Server.AuthRateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
		defer limiter.Stop()
		authLimit = limiter.Limit(cfg.Server.AuthRateLimitPerMinute)
	}

	router := rest.NewRouter(handlers, authLimit)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/vncsmyrnk/election/docs"
	"github.com/vncsmyrnk/election/internal/adapters/handler/http"
	"github.com/vncsmyrnk/election/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/config"
	"github.com/vncsmyrnk/election/internal/core/services"
)

// @title                       Election API
// @version                     1.0
// @description                 Constituency elections: registration, ballots, poll control and live results.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DSN(), postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxOpenConns / 2,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	constituencyRepo := postgres.NewConstituencyRepository(db)
	partyRepo := postgres.NewPartyRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	authRepo := postgres.NewAuthRepository(db)

	authService := services.NewAuthService(profileRepo, constituencyRepo, authRepo, google.NewVerifier(), services.AuthConfig{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		BcryptCost:      cfg.BcryptCost,
		GoogleClientID:  cfg.GoogleClientID,
	}, logger)
	userService := services.NewUserService(profileRepo, logger)
	constituencyService := services.NewConstituencyService(constituencyRepo, logger)
	partyService := services.NewPartyService(partyRepo, logger)
	candidateService := services.NewCandidateService(candidateRepo, partyRepo, constituencyRepo, profileRepo, logger)
	voteService := services.NewVoteService(constituencyRepo, candidateRepo, voteRepo, logger)
	resultService := services.NewResultService(constituencyRepo, candidateRepo, partyRepo, profileRepo, voteRepo)
	statsService := services.NewStatsService(profileRepo, constituencyRepo, partyRepo, candidateRepo, voteRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "election"),
	)
	metrics := http.NewMetrics(registry)

	sameSite, _ := cfg.SameSite()
	handler := http.NewHandler(http.Handlers{
		Auth: http.NewAuthHandler(authService, http.CookieConfig{
			Domain:     cfg.CookieDomain,
			SameSite:   sameSite,
			Secure:     cfg.SecureCookies(),
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		}, logger),
		Users:          http.NewUserHandler(userService, logger),
		Constituencies: http.NewConstituencyHandler(constituencyService, metrics, logger),
		Parties:        http.NewPartyHandler(partyService, logger),
		Candidates:     http.NewCandidateHandler(candidateService, logger),
		Votes:          http.NewVoteHandler(voteService, authService, constituencyService, candidateService, metrics, logger),
		Stats:          http.NewStatsHandler(resultService, statsService, logger),
	}, http.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Tokens:         authService,
		Metrics:        metrics,
		Gatherer:       registry,
		Logger:         logger,
	})

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

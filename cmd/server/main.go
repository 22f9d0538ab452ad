package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"praxis/internal/accesskey"
	"praxis/internal/catalog"
	foundationshandler "praxis/internal/foundations/handler"
	foundationsservice "praxis/internal/foundations/service"
	onboardinghandler "praxis/internal/onboarding/handler"
	onboardingservice "praxis/internal/onboarding/service"
	"praxis/internal/platform/config"
	"praxis/internal/platform/httpserver"
	"praxis/internal/platform/logger"
	"praxis/internal/platform/metrics"
	platformredis "praxis/internal/platform/redis"
	profilestore "praxis/internal/profile/store"
	progresshandler "praxis/internal/progress/handler"
	progressservice "praxis/internal/progress/service"
	"praxis/internal/sessiontoken"
	subscribehandler "praxis/internal/subscribe/handler"
	"praxis/internal/subscribe/mailer"
	subscribeservice "praxis/internal/subscribe/service"
	subscribestore "praxis/internal/subscribe/store"
	httptransport "praxis/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	m := metrics.New()
	health := map[string]httptransport.HealthChecker{}

	// Profile storage: the identity provider's metadata API in production,
	// in-memory for local development.
	var profiles profilestore.Store
	if cfg.Profile.APIBase != "" {
		profiles = profilestore.NewHTTP(cfg.Profile.APIBase, cfg.Profile.APISecret)
	} else {
		log.Warn("PROFILE_API_BASE not set, using in-memory profile store")
		profiles = profilestore.NewInMemory()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		profiles = profilestore.NewCached(profiles, redisClient.Client, cfg.Profile.CacheTTL, log)
		health["redis"] = redisClient.Health
		log.Info("profile cache enabled", "ttl", cfg.Profile.CacheTTL)
	}

	// Submission log: postgres when configured, else in-memory.
	var submissions subscribestore.Store
	if cfg.Postgres.DSN != "" {
		db, err := subscribestore.Open(cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		submissions = subscribestore.NewPostgres(db)
		health["postgres"] = db.PingContext
	} else {
		log.Warn("DATABASE_URL not set, submission log is in-memory")
		submissions = subscribestore.NewInMemory()
	}

	var listMailer mailer.Mailer
	if cfg.Mailing.APIKey != "" {
		listMailer = mailer.NewHTTP(cfg.Mailing.BaseURL, cfg.Mailing.APIKey)
	} else {
		log.Warn("MAILING_API_KEY not set, subscriptions are log-only")
		listMailer = mailer.NewLogOnly(log)
	}

	if cfg.Server.AccessKeyHash == "" {
		log.Warn("PRAXIS_ACCESS_KEY_HASH not set, access key gate rejects everything")
	}
	gate, err := accesskey.NewService(cfg.Server.AccessKeyHash, profiles, log)
	if err != nil {
		return err
	}
	onboarding, err := onboardingservice.New(profiles, log, m)
	if err != nil {
		return err
	}
	foundations, err := foundationsservice.New(profiles, log, m)
	if err != nil {
		return err
	}
	progress, err := progressservice.New(catalog.Default(), profiles, log, m)
	if err != nil {
		return err
	}
	subscribe, err := subscribeservice.New(submissions, listMailer, subscribeservice.ListRouting{
		SignalListID: cfg.Mailing.SignalListID,
		OSListID:     cfg.Mailing.OSListID,
	}, log, m)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:      log,
		Sessions:    sessiontoken.NewValidator(cfg.Server.JWTSigningKey),
		Subscribe:   subscribehandler.New(subscribe, log),
		AccessKey:   accesskey.NewHandler(gate),
		Onboarding:  onboardinghandler.New(onboarding, log),
		Foundations: foundationshandler.New(foundations, progress, log),
		Progress:    progresshandler.New(progress, log),
		Health:      health,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting praxis", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Let in-flight provider forwards finish before the process exits.
		subscribe.Drain()
		return nil
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dochub-io/dochub/pkg/api"
	"github.com/dochub-io/dochub/pkg/company"
	"github.com/dochub-io/dochub/pkg/config"
	"github.com/dochub-io/dochub/pkg/middleware"
	"github.com/dochub-io/dochub/pkg/observability"
	"github.com/dochub-io/dochub/pkg/projects"
	"github.com/dochub-io/dochub/pkg/snippets"
	"github.com/dochub-io/dochub/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dochub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info("starting dochub")

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	var pageCache *storage.RedisCache
	var collections *storage.CollectionCache
	if cfg.Storage.CacheEnabled && cfg.Storage.RedisURL != "" {
		pageCache, err = storage.NewRedisCache(cfg.Storage)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		collections, err = storage.NewCollectionCache(cfg.Storage.CollectionCacheSize)
		if err != nil {
			return fmt.Errorf("building collection cache: %w", err)
		}
		logger.Info("cache layer enabled")
	}

	companySvc := company.NewService(db)
	projectSvc := projects.NewService(db)

	registry := snippets.DefaultRegistry()
	if cfg.Snippets.TargetsFile != "" {
		overrideLog := logrus.New()
		if err := registry.LoadOverrides(cfg.Snippets.TargetsFile, overrideLog); err != nil {
			return fmt.Errorf("loading snippet target overrides: %w", err)
		}
	}

	var metrics *observability.Metrics
	promRegistry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(promRegistry)
	}

	var auth *middleware.AuthMiddleware
	if tokens := parseTokenPairs(os.Getenv("DOCHUB_API_TOKENS")); len(tokens) > 0 {
		auth = middleware.NewAuthMiddleware(middleware.NewStaticTokenValidator(tokens), false)
	} else {
		logger.Warn("no API tokens configured, management API runs unauthenticated")
	}

	quota := middleware.NewQuotaMiddleware(projectSvc, middleware.DefaultQuotaLimits())

	srv := api.NewServer(api.Deps{
		Companies:   companySvc,
		Projects:    projectSvc,
		Snippets:    registry,
		PageCache:   pageCache,
		Collections: collections,
		Logger:      logger,
		Metrics:     metrics,
		Auth:        auth,
		Quota:       quota,
		TryItClient: &http.Client{Timeout: 30 * time.Second},
	})

	handler := srv.Handler()
	if pageCache != nil {
		handler = middleware.NewDistributedRateLimitMiddleware(pageCache.Client()).Handler(handler)
	} else {
		handler = middleware.NewRateLimitMiddleware().Handler(handler)
	}

	apiServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var healthChecker *observability.HealthChecker
	if pageCache != nil {
		healthChecker = observability.NewHealthChecker(db.DB, pageCache.Client())
	} else {
		healthChecker = observability.NewHealthChecker(db.DB, nil)
	}

	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, healthChecker)
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, promRegistry)
	}
	healthServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: healthMux,
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Maintenance.InviteCleanupSchedule, func() {
		defer observability.RecoverPanic(logger, "invitation cleanup")
		removed, err := companySvc.CleanupExpiredInvitations()
		if err != nil {
			logger.WithError(err).Error("invitation cleanup failed")
			return
		}
		if removed > 0 {
			logger.WithField("removed", removed).Info("purged expired invitations")
		}
	}); err != nil {
		return fmt.Errorf("invalid invite cleanup schedule: %w", err)
	}
	scheduler.Start()

	shutdown := observability.NewShutdownManager(logger, apiServer, cfg.Server.ShutdownTimeout)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return healthServer.Shutdown(ctx)
	})
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		stopped := scheduler.Stop()
		select {
		case <-stopped.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		if pageCache != nil {
			if err := pageCache.Close(); err != nil {
				return err
			}
		}
		return db.Close()
	})

	var g errgroup.Group
	g.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("API server listening")
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("API server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("health server listening")
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(shutdown.WaitForShutdown)

	return g.Wait()
}

// parseTokenPairs parses "token=userID" pairs separated by commas.
func parseTokenPairs(raw string) map[string]string {
	tokens := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		token, userID, ok := strings.Cut(pair, "=")
		if !ok || token == "" || userID == "" {
			continue
		}
		tokens[token] = userID
	}
	return tokens
}

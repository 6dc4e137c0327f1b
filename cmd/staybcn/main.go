package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"staybcn/internal/app/bookingflow"
	domaincatalog "staybcn/internal/domain/catalog"
	catalogmemory "staybcn/internal/infra/catalog/memory"
	catalogmongo "staybcn/internal/infra/catalog/mongo"
	"staybcn/internal/infra/config"
	ginserver "staybcn/internal/infra/http/gin"
	notifykafka "staybcn/internal/infra/notify/kafka"
	"staybcn/internal/infra/obs"
	sessionmemory "staybcn/internal/infra/session/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	units, err := buildCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Error("catalog init failed", "error", err)
		os.Exit(1)
	}

	store := sessionmemory.NewStore(cfg.SessionTTL)
	go func() {
		if err := store.RunSweeper(ctx, cfg.SessionSweepInterval); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("session sweeper stopped", "error", err)
		}
	}()

	notifier, closeNotifier, err := buildNotifier(cfg, logger)
	if err != nil {
		logger.Error("notifier init failed", "error", err)
		os.Exit(1)
	}
	defer closeNotifier()

	flow := &bookingflow.Service{
		Catalog:        units,
		Sessions:       store,
		Notifier:       notifier,
		DefaultCityTax: cfg.DefaultCityTax,
		Logger:         logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, ginserver.Handlers{
		Unit:    ginserver.UnitHandler{Catalog: units},
		Session: ginserver.SessionHandler{Flow: flow},
		Booking: ginserver.BookingHandler{Flow: flow},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (domaincatalog.Catalog, error) {
	if cfg.CatalogMode == "mongo" {
		client, err := catalogmongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			return nil, err
		}
		logger.Info("unit catalog backed by mongo", "db", cfg.MongoDB)
		return catalogmongo.NewCatalog(client), nil
	}

	catalog := catalogmemory.NewCatalog()
	path := cfg.UnitsFixtures
	if path == "" {
		path = defaultUnitFixturesPath()
	}
	if err := catalog.LoadFixtures(path, logger); err != nil {
		return nil, err
	}
	return catalog, nil
}

func buildNotifier(cfg config.Config, logger *slog.Logger) (bookingflow.Notifier, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return bookingflow.NopNotifier{}, func() {}, nil
	}
	notifier, err := notifykafka.NewNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("confirmation notifier backed by kafka", "topic", cfg.KafkaTopic)
	return notifier, func() {
		if err := notifier.Close(); err != nil {
			logger.Error("kafka notifier close failed", "error", err)
		}
	}, nil
}

func defaultUnitFixturesPath() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("configs", "units.json")
	}
	return filepath.Join(filepath.Dir(exe), "configs", "units.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/familyhub/family-hub/internal/adapter/httpapi"
	kafkaadapter "github.com/familyhub/family-hub/internal/adapter/kafka"
	"github.com/familyhub/family-hub/internal/adapter/linq"
	"github.com/familyhub/family-hub/internal/adapter/openmeteo"
	"github.com/familyhub/family-hub/internal/auth"
	"github.com/familyhub/family-hub/internal/checklist"
	"github.com/familyhub/family-hub/internal/config"
	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/hub"
	"github.com/familyhub/family-hub/internal/observability"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	menuClient := linq.NewClient(cfg.MenuBaseURL, cfg.MenuTimeout, metrics, logger)

	// Weather panel (feature-flagged via WEATHER_ENABLED).
	var weather hub.WeatherSource
	if cfg.WeatherEnabled {
		weather = openmeteo.NewClient(cfg.WeatherBaseURL, cfg.WeatherLat, cfg.WeatherLon, cfg.WeatherTimeout, metrics, logger)
		logger.Info("weather panel enabled", "city", cfg.CityName, "lat", cfg.WeatherLat, "lon", cfg.WeatherLon)
	} else {
		logger.Info("weather panel disabled")
	}

	// Menu snapshot events (feature-flagged via MENU_EVENTS_ENABLED).
	var announcer hub.MenuAnnouncer
	var kafkaAnnouncer *kafkaadapter.Announcer
	if cfg.MenuEventsEnabled {
		kafkaAnnouncer = kafkaadapter.NewAnnouncer(cfg, logger)
		announcer = kafkaAnnouncer
		logger.Info("menu snapshot events enabled", "topic", cfg.KafkaSnapshotTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("menu snapshot events disabled")
	}

	refresher := hub.New(menuClient, weather, announcer, cfg.MenuIdentifier, cfg.RefreshInterval, clockwork.NewRealClock(), logger, metrics)

	authSvc := auth.NewService(cfg.FamilyPIN, cfg.SessionSecret, cfg.FamilyName, cfg.SessionTTL)

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.Deps{
		Menu:       menuClient,
		Identifier: cfg.MenuIdentifier,
		State:      refresher,
		Trigger:    refresher,
		Auth:       authSvc,
		Todos:      checklist.NewStore(checklist.SeedTodos(), ""),
		Chores:     checklist.NewStore(checklist.SeedChores(), "Anyone"),
		Kids:       domain.DefaultKids(),
		CityName:   cfg.CityName,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh loop.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaAnnouncer != nil {
		if err := kafkaAnnouncer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

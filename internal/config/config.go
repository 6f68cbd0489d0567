package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Lunch menu provider (LINQ Connect).
	MenuIdentifier  string
	MenuBaseURL     string
	MenuTimeout     time.Duration
	RefreshInterval time.Duration

	// Household identity and PIN gate.
	FamilyName    string
	FamilyPIN     string
	SessionSecret string
	SessionTTL    time.Duration

	// Weather provider (Open-Meteo).
	WeatherEnabled bool
	WeatherBaseURL string
	WeatherTimeout time.Duration
	CityName       string
	WeatherLat     float64
	WeatherLon     float64

	// Optional menu snapshot events.
	MenuEventsEnabled  bool
	KafkaBrokers       []string
	KafkaSnapshotTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	menuTimeout, err := envDuration("MENU_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := envDuration("REFRESH_INTERVAL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := envDuration("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := envDuration("WEATHER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	lat, err := envFloat("WEATHER_LAT", 42.1663)
	if err != nil {
		return nil, err
	}
	lon, err := envFloat("WEATHER_LON", -87.9622)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		MenuIdentifier:  envOrDefault("MENU_IDENTIFIER", "FSA766"),
		MenuBaseURL:     envOrDefault("MENU_BASE_URL", "https://linqconnect.com"),
		MenuTimeout:     menuTimeout,
		RefreshInterval: refreshInterval,

		FamilyName:    envOrDefault("FAMILY_NAME", "The Yusupov Family"),
		FamilyPIN:     envOrDefault("FAMILY_PIN", "0000"),
		SessionSecret: envOrDefault("SESSION_SECRET", "family-hub-dev-secret"),
		SessionTTL:    sessionTTL,

		WeatherEnabled: envOrDefault("WEATHER_ENABLED", "true") == "true",
		WeatherBaseURL: envOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		WeatherTimeout: weatherTimeout,
		CityName:       envOrDefault("CITY_NAME", "Buffalo Grove"),
		WeatherLat:     lat,
		WeatherLon:     lon,

		MenuEventsEnabled:  os.Getenv("MENU_EVENTS_ENABLED") == "true",
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSnapshotTopic: envOrDefault("KAFKA_SNAPSHOT_TOPIC", "family-hub-menu-snapshots"),
	}

	if cfg.MenuIdentifier == "" {
		return nil, errors.New("MENU_IDENTIFIER is required")
	}
	if len(cfg.FamilyPIN) < 4 {
		return nil, errors.New("FAMILY_PIN must be at least 4 digits")
	}
	if cfg.MenuEventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("MENU_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

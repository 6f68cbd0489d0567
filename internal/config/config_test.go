package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, "FSA766", cfg.MenuIdentifier)
	assert.Equal(t, "https://linqconnect.com", cfg.MenuBaseURL)
	assert.Equal(t, 10*time.Second, cfg.MenuTimeout)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)

	assert.Equal(t, "The Yusupov Family", cfg.FamilyName)
	assert.Equal(t, "0000", cfg.FamilyPIN)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)

	assert.True(t, cfg.WeatherEnabled)
	assert.Equal(t, "https://api.open-meteo.com", cfg.WeatherBaseURL)
	assert.Equal(t, "Buffalo Grove", cfg.CityName)
	assert.Equal(t, 42.1663, cfg.WeatherLat)
	assert.Equal(t, -87.9622, cfg.WeatherLon)

	assert.False(t, cfg.MenuEventsEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "family-hub-menu-snapshots", cfg.KafkaSnapshotTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MENU_IDENTIFIER", "ABC123")
	t.Setenv("MENU_BASE_URL", "http://localhost:9999")
	t.Setenv("MENU_TIMEOUT", "3s")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("FAMILY_NAME", "The Test Family")
	t.Setenv("FAMILY_PIN", "198712")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("WEATHER_ENABLED", "false")
	t.Setenv("WEATHER_LAT", "41.88")
	t.Setenv("WEATHER_LON", "-87.63")
	t.Setenv("CITY_NAME", "Chicago")
	t.Setenv("MENU_EVENTS_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SNAPSHOT_TOPIC", "menus")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "ABC123", cfg.MenuIdentifier)
	assert.Equal(t, "http://localhost:9999", cfg.MenuBaseURL)
	assert.Equal(t, 3*time.Second, cfg.MenuTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "The Test Family", cfg.FamilyName)
	assert.Equal(t, "198712", cfg.FamilyPIN)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.WeatherEnabled)
	assert.Equal(t, 41.88, cfg.WeatherLat)
	assert.Equal(t, -87.63, cfg.WeatherLon)
	assert.Equal(t, "Chicago", cfg.CityName)
	assert.True(t, cfg.MenuEventsEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "menus", cfg.KafkaSnapshotTopic)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("MENU_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MENU_TIMEOUT")
}

func TestLoad_NegativeDurationRejected(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "-5m")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidLatitude(t *testing.T) {
	t.Setenv("WEATHER_LAT", "north-ish")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_LAT")
}

func TestLoad_ShortPINRejected(t *testing.T) {
	t.Setenv("FAMILY_PIN", "12")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAMILY_PIN")
}

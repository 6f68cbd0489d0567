package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		lat:        42.1663,
		lon:        -87.9622,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_CurrentForecast_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "42.1663", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-87.9622", r.URL.Query().Get("longitude"))
		assert.Equal(t, "temperature_2m,weather_code", r.URL.Query().Get("current"))
		assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))

		_, _ = w.Write([]byte(`{
			"current": {"temperature_2m": 33.4, "weather_code": 73},
			"daily": {"temperature_2m_max": [38.6, 41.0], "temperature_2m_min": [27.2, 30.1]}
		}`))
	}))
	defer srv.Close()

	report, err := testClient(srv.URL).CurrentForecast(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 33, report.Temp)
	assert.Equal(t, 73, report.Code)
	assert.Equal(t, 39, report.Max)
	assert.Equal(t, 27, report.Min)
	assert.Equal(t, "snow", report.Condition)
	assert.Equal(t, "Winter coat, hat, and gloves!", report.Clothing)
}

func TestClient_CurrentForecast_MissingDailyArrays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"current": {"temperature_2m": 70.0, "weather_code": 1}}`))
	}))
	defer srv.Close()

	report, err := testClient(srv.URL).CurrentForecast(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 70, report.Temp)
	assert.Zero(t, report.Min)
	assert.Zero(t, report.Max)
	assert.Equal(t, "clear", report.Condition)
}

func TestClient_CurrentForecast_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CurrentForecast(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_CurrentForecast_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not-json{{{`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CurrentForecast(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

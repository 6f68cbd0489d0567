// Package openmeteo fetches current conditions from the Open-Meteo forecast
// API for the weather panel.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/observability"
)

// Client fetches the current forecast for a fixed coordinate pair.
type Client struct {
	baseURL    string
	lat, lon   float64
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client pinned to the household's location.
func NewClient(baseURL string, lat, lon float64, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		lat:     lat,
		lon:     lon,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentForecast returns today's conditions with the derived condition and
// clothing fields filled in.
func (c *Client) CurrentForecast(ctx context.Context) (domain.WeatherReport, error) {
	params := url.Values{
		"latitude":         {strconv.FormatFloat(c.lat, 'f', 4, 64)},
		"longitude":        {strconv.FormatFloat(c.lon, 'f', 4, 64)},
		"current":          {"temperature_2m,weather_code"},
		"daily":            {"temperature_2m_max,temperature_2m_min"},
		"temperature_unit": {"fahrenheit"},
		"timezone":         {"auto"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("create forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.WeatherFetches.WithLabelValues("error").Inc()
		return domain.WeatherReport{}, fmt.Errorf("forecast request: %v: %w", err, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.WeatherFetches.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.WeatherReport{}, fmt.Errorf("forecast request: status %d: %s: %w", resp.StatusCode, body, domain.ErrUpstreamUnavailable)
	}

	var f forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		c.metrics.WeatherFetches.WithLabelValues("error").Inc()
		return domain.WeatherReport{}, fmt.Errorf("decode forecast response: %v: %w", err, domain.ErrMalformedResponse)
	}

	report := domain.WeatherReport{
		Temp: int(math.Round(f.Current.Temperature)),
		Code: f.Current.WeatherCode,
	}
	// The daily arrays hold one value per forecast day; index 0 is today.
	if len(f.Daily.TemperatureMin) > 0 {
		report.Min = int(math.Round(f.Daily.TemperatureMin[0]))
	}
	if len(f.Daily.TemperatureMax) > 0 {
		report.Max = int(math.Round(f.Daily.TemperatureMax[0]))
	}

	c.metrics.WeatherFetches.WithLabelValues("success").Inc()
	c.logger.Debug("forecast fetched", "temp", report.Temp, "code", report.Code)
	return domain.EnrichWeather(report), nil
}

// Open-Meteo API response types.

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

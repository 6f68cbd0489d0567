package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard's fetch cycles.
type Metrics struct {
	// Upstream call metrics.
	MenuFetches       *prometheus.CounterVec   // labels: stage={resolve,feed}, outcome={success,upstream_error,malformed}
	MenuFetchDuration *prometheus.HistogramVec // labels: stage={resolve,feed}
	WeatherFetches    *prometheus.CounterVec   // labels: outcome={success,error}

	// Normalization metrics.
	SessionsNormalized prometheus.Counter
	SessionsSkipped    prometheus.Counter

	// Fetch-cycle metrics.
	RefreshCycles         *prometheus.CounterVec // labels: leg={menu,weather}, outcome={committed,failed,stale}
	StaleResultsDiscarded prometheus.Counter
	RefresherRunning      prometheus.Gauge

	// Snapshot event metrics.
	SnapshotsPublished prometheus.Counter
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MenuFetches,
		m.MenuFetchDuration,
		m.WeatherFetches,
		m.SessionsNormalized,
		m.SessionsSkipped,
		m.RefreshCycles,
		m.StaleResultsDiscarded,
		m.RefresherRunning,
		m.SnapshotsPublished,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MenuFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "menu_fetches_total",
			Help:      "Menu provider calls by stage and outcome.",
		}, []string{"stage", "outcome"}),
		MenuFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "family_hub",
			Name:      "menu_fetch_duration_seconds",
			Help:      "Menu provider call duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "weather_fetches_total",
			Help:      "Weather provider calls by outcome.",
		}, []string{"outcome"}),
		SessionsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "menu_sessions_normalized_total",
			Help:      "Feed sessions successfully bucketed into a weekday.",
		}),
		SessionsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "menu_sessions_skipped_total",
			Help:      "Feed sessions dropped during normalization (unparseable serving date).",
		}),
		RefreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "refresh_cycles_total",
			Help:      "Fetch-cycle legs by outcome.",
		}, []string{"leg", "outcome"}),
		StaleResultsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "stale_results_discarded_total",
			Help:      "Completed fetch cycles discarded because a newer cycle was already issued.",
		}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "family_hub",
			Name:      "refresher_running",
			Help:      "1 when the periodic refresher is active, 0 when shut down.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "family_hub",
			Name:      "menu_snapshots_published_total",
			Help:      "Normalized menu snapshots published to the events topic.",
		}),
	}
}

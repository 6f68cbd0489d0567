// Package hub orchestrates the dashboard's fetch cycles and holds the view
// state the boundary serves.
package hub

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/familyhub/family-hub/internal/domain"
	"github.com/familyhub/family-hub/internal/observability"
	"github.com/jonboulle/clockwork"
)

// MenuSource resolves the organization identifier and fetches the raw weekly feed.
type MenuSource interface {
	GetWeeklyMenu(ctx context.Context, identifier string) (domain.RawMenuFeed, error)
}

// WeatherSource fetches current conditions.
type WeatherSource interface {
	CurrentForecast(ctx context.Context) (domain.WeatherReport, error)
}

// MenuAnnouncer publishes a committed menu snapshot to downstream consumers.
type MenuAnnouncer interface {
	AnnounceMenu(ctx context.Context, menu domain.WeekMenu, fetchedAt time.Time) error
}

// MenuSnapshot is one committed fetch cycle's normalized menu.
type MenuSnapshot struct {
	Menu      domain.WeekMenu
	FetchedAt time.Time
}

// WeatherSnapshot is one committed fetch cycle's weather report.
type WeatherSnapshot struct {
	Report    domain.WeatherReport
	FetchedAt time.Time
}

// Refresher runs fetch cycles and exposes their latest committed snapshots.
//
// Every cycle is tagged with a monotonic sequence number at issue time; a
// completing leg commits only if its sequence is still the latest issued, so
// a slow stale response can never overwrite a newer one. Snapshots are
// replaced wholesale, never mutated in place. The menu and weather legs run
// concurrently and independently: a failure in one leaves the other's
// snapshot untouched.
type Refresher struct {
	menu       MenuSource
	weather    WeatherSource // nil when the weather panel is disabled
	announcer  MenuAnnouncer // nil when snapshot events are disabled
	identifier string
	interval   time.Duration
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics

	seq   atomic.Uint64 // latest issued cycle
	ready atomic.Bool

	mu          sync.RWMutex
	menuSnap    *MenuSnapshot
	weatherSnap *WeatherSnapshot
}

// New creates a Refresher. Pass a nil weather source or announcer to disable
// that leg.
func New(menu MenuSource, weather WeatherSource, announcer MenuAnnouncer, identifier string, interval time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		menu:       menu,
		weather:    weather,
		announcer:  announcer,
		identifier: identifier,
		interval:   interval,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once at least one fetch cycle has committed a
// snapshot, or an error describing why the service is not yet ready.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no fetch cycle has completed yet")
	}
	return nil
}

// Run executes an immediate fetch cycle, then one per interval until the
// context is cancelled.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started", "interval", r.interval)
	r.metrics.RefresherRunning.Set(1)
	defer r.metrics.RefresherRunning.Set(0)

	r.Refresh(ctx)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			r.Refresh(ctx)
		}
	}
}

// Refresh runs one fetch cycle. Safe to call concurrently with an in-flight
// cycle: whichever cycle holds the latest sequence number wins.
func (r *Refresher) Refresh(ctx context.Context) {
	seq := r.seq.Add(1)

	var wg sync.WaitGroup
	var menuCommitted, weatherCommitted bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		menuCommitted = r.refreshMenu(ctx, seq)
	}()

	if r.weather != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			weatherCommitted = r.refreshWeather(ctx, seq)
		}()
	}

	wg.Wait()

	if menuCommitted || weatherCommitted {
		r.ready.Store(true)
	}
}

// WeekMenu returns the latest committed menu snapshot, if any.
func (r *Refresher) WeekMenu() (MenuSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.menuSnap == nil {
		return MenuSnapshot{}, false
	}
	return *r.menuSnap, true
}

// Weather returns the latest committed weather snapshot, if any.
func (r *Refresher) Weather() (WeatherSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.weatherSnap == nil {
		return WeatherSnapshot{}, false
	}
	return *r.weatherSnap, true
}

func (r *Refresher) refreshMenu(ctx context.Context, seq uint64) bool {
	feed, err := r.menu.GetWeeklyMenu(ctx, r.identifier)
	if err != nil {
		r.metrics.RefreshCycles.WithLabelValues("menu", "failed").Inc()
		r.logger.Error("menu fetch failed", "identifier", r.identifier, "error", err)
		return false
	}

	menu, skipped := domain.Normalize(feed, r.logger)
	r.metrics.SessionsNormalized.Add(float64(len(feed) - skipped))
	if skipped > 0 {
		r.metrics.SessionsSkipped.Add(float64(skipped))
		r.logger.Warn("partial menu data",
			"skipped_sessions", skipped,
			"total_sessions", len(feed),
		)
	}

	snap, ok := r.commitMenu(seq, menu)
	if !ok {
		return false
	}
	r.announce(ctx, snap)
	return true
}

func (r *Refresher) refreshWeather(ctx context.Context, seq uint64) bool {
	report, err := r.weather.CurrentForecast(ctx)
	if err != nil {
		r.metrics.RefreshCycles.WithLabelValues("weather", "failed").Inc()
		r.logger.Error("weather fetch failed", "error", err)
		return false
	}
	return r.commitWeather(seq, report)
}

// commitMenu installs a new menu snapshot unless a newer cycle has been
// issued since this one started.
func (r *Refresher) commitMenu(seq uint64, menu domain.WeekMenu) (MenuSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq.Load() {
		r.metrics.StaleResultsDiscarded.Inc()
		r.metrics.RefreshCycles.WithLabelValues("menu", "stale").Inc()
		r.logger.Info("discarding stale menu result", "seq", seq, "latest", r.seq.Load())
		return MenuSnapshot{}, false
	}

	snap := MenuSnapshot{Menu: menu, FetchedAt: r.clock.Now()}
	r.menuSnap = &snap
	r.metrics.RefreshCycles.WithLabelValues("menu", "committed").Inc()
	return snap, true
}

func (r *Refresher) commitWeather(seq uint64, report domain.WeatherReport) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq.Load() {
		r.metrics.StaleResultsDiscarded.Inc()
		r.metrics.RefreshCycles.WithLabelValues("weather", "stale").Inc()
		r.logger.Info("discarding stale weather result", "seq", seq, "latest", r.seq.Load())
		return false
	}

	r.weatherSnap = &WeatherSnapshot{Report: report, FetchedAt: r.clock.Now()}
	r.metrics.RefreshCycles.WithLabelValues("weather", "committed").Inc()
	return true
}

func (r *Refresher) announce(ctx context.Context, snap MenuSnapshot) {
	if r.announcer == nil {
		return
	}
	if err := r.announcer.AnnounceMenu(ctx, snap.Menu, snap.FetchedAt); err != nil {
		r.logger.Warn("menu snapshot publish failed", "error", err)
		return
	}
	r.metrics.SnapshotsPublished.Inc()
}

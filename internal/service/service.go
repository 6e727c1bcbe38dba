package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-session-service/internal/availability"
	"github.com/kjstillabower/weather-session-service/internal/client"
	"github.com/kjstillabower/weather-session-service/internal/history"
	"github.com/kjstillabower/weather-session-service/internal/models"
	"github.com/kjstillabower/weather-session-service/internal/normalize"
	"github.com/kjstillabower/weather-session-service/internal/observability"
	"github.com/kjstillabower/weather-session-service/internal/theme"
	"github.com/kjstillabower/weather-session-service/internal/units"
	"github.com/kjstillabower/weather-session-service/internal/validation"
)

// Orchestrator is the single retrieval entry point. It drives the
// two-call pipeline (current conditions, then best-effort alerts),
// normalizes the result, and keeps the session state managers current.
// It is invoked identically whether the caller's trigger was typed input
// or a re-selected history entry.
type Orchestrator struct {
	client   client.WeatherClient
	history  *history.Store
	theme    *theme.State
	queryMin int
	queryMax int
}

// NewOrchestrator wires the retrieval pipeline to its session stores.
// queryMin/queryMax bound the accepted location query length in runes
// (0 disables a bound).
func NewOrchestrator(c client.WeatherClient, hist *history.Store, th *theme.State, queryMin, queryMax int) *Orchestrator {
	return &Orchestrator{
		client:   c,
		history:  hist,
		theme:    th,
		queryMin: queryMin,
		queryMax: queryMax,
	}
}

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// Fetch retrieves current conditions for query in the given unit system.
//
// The query is validated before any network activity. The primary call
// failing fails the retrieval; the alerts call failing only degrades the
// snapshot to an empty alert list. The query is recorded in the history
// after a successful retrieval, fire-and-forget.
func (o *Orchestrator) Fetch(ctx context.Context, query string, system units.System) (models.WeatherSnapshot, error) {
	trimmed, err := validation.ValidateQuery(query, o.queryMin, o.queryMax)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := normalizeQuery(trimmed)
	start := time.Now()
	logger := loggerFromContext(ctx)

	observability.WeatherQueriesTotal.Inc()
	observability.WeatherQueriesByLocationTotal.WithLabelValues(observability.MetricLocationLabel(key)).Inc()

	raw, err := o.client.FetchCurrent(ctx, trimmed, system)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("fetch weather for %s: %w", key, err)
	}

	alerts := o.fetchAlerts(ctx, raw.Coord.Lat, raw.Coord.Lon, logger)

	snap, err := normalize.Snapshot(raw, alerts, system)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if o.history.Record(trimmed) {
		observability.HistorySize.Set(float64(o.history.Len()))
	}

	if logger != nil {
		logger.Debug("weather retrieved",
			zap.String("location", key),
			zap.Int("alerts", len(snap.Alerts)),
			zap.Duration("duration", time.Since(start)))
	}
	return snap, nil
}

// fetchAlerts performs the secondary call. Every failure is swallowed
// here: the result degrades to nil (an empty alert list downstream) and
// the failure is visible only through logs, metrics, and the
// availability window the health handler reads.
func (o *Orchestrator) fetchAlerts(ctx context.Context, lat, lon float64, logger *zap.Logger) *client.RawAlerts {
	raw, err := o.client.FetchAlerts(ctx, lat, lon)
	if err != nil {
		availability.RecordFailure()
		observability.AlertsFetchFailuresTotal.Inc()
		if logger != nil {
			logger.Warn("alerts fetch failed, continuing without alerts",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.String("category", string(client.CategorizeError(err))),
				zap.Error(err))
		}
		return nil
	}
	availability.RecordSuccess()
	return &raw
}

// HistoryEntries returns the session search history in insertion order.
func (o *Orchestrator) HistoryEntries() []string {
	return o.history.Entries()
}

// DisplayMode returns the active display mode.
func (o *Orchestrator) DisplayMode() theme.Mode {
	return o.theme.Current()
}

// ToggleDisplayMode flips the display mode and returns the new value.
func (o *Orchestrator) ToggleDisplayMode() theme.Mode {
	observability.ThemeTogglesTotal.Inc()
	return o.theme.Toggle()
}

// normalizeQuery produces the canonical key for a location query: trim
// whitespace, lowercase. The same policy deduplicates history entries.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-session-service/internal/availability"
	"github.com/kjstillabower/weather-session-service/internal/client"
	"github.com/kjstillabower/weather-session-service/internal/icons"
	"github.com/kjstillabower/weather-session-service/internal/lifecycle"
	"github.com/kjstillabower/weather-session-service/internal/models"
	"github.com/kjstillabower/weather-session-service/internal/service"
	"github.com/kjstillabower/weather-session-service/internal/theme"
	"github.com/kjstillabower/weather-session-service/internal/units"
)

// HealthConfig holds thresholds for the health handler.
type HealthConfig struct {
	// AlertsDegradedWindow and AlertsDegradedErrorPct decide when the
	// best-effort alerts call is reported as degraded. Alerts
	// degradation never makes the service itself unhealthy.
	AlertsDegradedWindow   time.Duration
	AlertsDegradedErrorPct int
}

// Handler holds dependencies for HTTP handlers. It is the presentation
// boundary: it translates requests into orchestrator calls and typed
// results into JSON, and does no retrieval logic of its own.
type Handler struct {
	orchestrator     *service.Orchestrator
	client           client.WeatherClient
	healthConfig     *HealthConfig
	logger           *zap.Logger
	defaultUnits     units.System
	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler.
func NewHandler(
	orchestrator *service.Orchestrator,
	client client.WeatherClient,
	healthConfig *HealthConfig,
	logger *zap.Logger,
	defaultUnits units.System,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		client:       client,
		healthConfig: healthConfig,
		logger:       logger,
		defaultUnits: defaultUnits,
	}
}

// weatherResponse is a snapshot plus the render hints the presentation
// layer needs: the resolved icon and the unit suffixes for labels.
type weatherResponse struct {
	models.WeatherSnapshot
	Icon    icons.ID     `json:"icon"`
	Display displayHints `json:"display"`
}

type displayHints struct {
	TemperatureSuffix string `json:"temperatureSuffix"`
	WindSpeedSuffix   string `json:"windSpeedSuffix"`
	DistanceSuffix    string `json:"distanceSuffix"`
}

// GetWeather handles GET /weather/{location}?units=metric|imperial.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]

	system := h.defaultUnits
	if token := r.URL.Query().Get("units"); token != "" {
		system = units.Parse(token)
	}

	snap, err := h.orchestrator.Fetch(r.Context(), location, system)
	if err != nil {
		h.writeFetchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, weatherResponse{
		WeatherSnapshot: snap,
		Icon:            icons.Resolve(snap.Conditions),
		Display: displayHints{
			TemperatureSuffix: system.TemperatureSuffix(),
			WindSpeedSuffix:   system.WindSpeedSuffix(),
			DistanceSuffix:    system.DistanceSuffix(),
		},
	})
}

// writeFetchError maps a classified retrieval failure to a status code
// and stable error code. Upstream 404 keeps its status and body so a bad
// location name is distinguishable from an outage.
func (h *Handler) writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.Classify(err) {
	case service.KindInvalidInput:
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATION", "location must be a non-empty place name")
	case service.KindAPI:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			writeError(w, r, http.StatusNotFound, "LOCATION_NOT_FOUND", upstreamMessage(apiErr.Body))
			return
		}
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR", "weather service returned an error")
	case service.KindNetwork:
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "unable to reach weather service")
	case service.KindMalformedResponse:
		writeError(w, r, http.StatusBadGateway, "MALFORMED_UPSTREAM", "weather service returned an unexpected payload")
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "unexpected failure")
	}
	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
		logger.Debug("fetch failed", zap.String("kind", string(service.Classify(err))), zap.Error(err))
	}
}

// upstreamMessage extracts the message field from an upstream error body
// like {"cod":"404","message":"city not found"}. Falls back to a fixed
// message when the body is not in that shape.
func upstreamMessage(body string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "location not found"
}

// historyResponse is the body of GET /history.
type historyResponse struct {
	Entries []string `json:"entries"`
}

// GetHistory handles GET /history.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, historyResponse{Entries: h.orchestrator.HistoryEntries()})
}

// themeResponse is the body of the theme endpoints.
type themeResponse struct {
	Mode theme.Mode `json:"mode"`
}

// GetTheme handles GET /theme.
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse{Mode: h.orchestrator.DisplayMode()})
}

// PostThemeToggle handles POST /theme/toggle.
func (h *Handler) PostThemeToggle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse{Mode: h.orchestrator.ToggleDisplayMode()})
}

// GetHealth handles GET /health. Alerts degradation is reported in the
// checks but keeps the service healthy: retrievals still succeed without
// alerts.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	statusCode := http.StatusOK
	reason := ""

	checks := map[string]string{
		"weatherApi": "healthy",
		"alerts":     "healthy",
	}

	switch {
	case lifecycle.IsShuttingDown():
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
		reason = "signal"
	default:
		if err := h.client.ValidateAPIKey(r.Context()); err != nil {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
			reason = "api_key_invalid"
			checks["weatherApi"] = "unhealthy"
		}
		if h.healthConfig != nil && h.alertsDegraded() {
			checks["alerts"] = "degraded"
		}
	}

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", status),
			zap.String("reason", reason))
	}
	h.healthStatusPrev = status
	h.healthStatusMu.Unlock()

	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   "weather-session-service",
		"version":   "dev",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// alertsDegraded reports whether the alerts-call failure rate over the
// configured window breached the threshold.
func (h *Handler) alertsDegraded() bool {
	if h.healthConfig.AlertsDegradedWindow <= 0 || h.healthConfig.AlertsDegradedErrorPct <= 0 {
		return false
	}
	failures, total := availability.FailureRate(h.healthConfig.AlertsDegradedWindow)
	if total == 0 {
		return false
	}
	pct := float64(failures) * 100 / float64(total)
	return pct >= float64(h.healthConfig.AlertsDegradedErrorPct)
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with
// code, message, and requestId (correlation ID) if available in context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	corrID := ""
	if v := r.Context().Value("correlation_id"); v != nil {
		if s, ok := v.(string); ok {
			corrID = s
		}
	}
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   strings.TrimSpace(message),
			"requestId": corrID,
		},
	})
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kjstillabower/weather-session-service/internal/observability"
	"github.com/kjstillabower/weather-session-service/internal/units"
)

// WeatherClient issues the upstream calls and classifies their outcomes.
// It never touches session or presentation state.
type WeatherClient interface {
	FetchCurrent(ctx context.Context, location string, system units.System) (RawCurrent, error)
	FetchAlerts(ctx context.Context, lat, lon float64) (RawAlerts, error)
	ValidateAPIKey(ctx context.Context) error
}

var (
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrNetwork wraps transport-level failures: DNS, connection, timeout.
	ErrNetwork = errors.New("network failure")
	// ErrDecode wraps payloads that arrived with a success status but
	// could not be decoded.
	ErrDecode = errors.New("decode failure")
)

// APIError is a non-success status from upstream. The raw response body
// is preserved so callers can surface upstream detail (e.g. the
// {"message":"city not found"} body on 404) instead of generic text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.StatusCode, e.Body)
}

// RawCurrent is the decoded current-weather payload, kept in the
// upstream shape. Normalization into a snapshot happens elsewhere.
type RawCurrent struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather []RawCondition `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure int     `json:"pressure"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	VisibilityMeters int `json:"visibility"`
	Wind             struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Name string `json:"name"`
}

// RawCondition is one entry of the upstream condition list.
type RawCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// RawAlerts is the decoded alerts payload from the One Call endpoint.
// The alerts array is absent from the payload when nothing is active.
type RawAlerts struct {
	Alerts []RawAlert `json:"alerts"`
}

// RawAlert is a single upstream alert entry. Start and End are Unix
// timestamps as delivered.
type RawAlert struct {
	SenderName  string `json:"sender_name"`
	Event       string `json:"event"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Description string `json:"description"`
}

// OpenWeatherClient talks to the OpenWeatherMap current-weather and One
// Call endpoints. One round trip per call, no retries: a failed attempt
// is terminal and the caller decides what to do with the classified error.
type OpenWeatherClient struct {
	apiKey     string
	weatherURL string
	alertsURL  string
	timeout    time.Duration
	client     *http.Client
}

// NewOpenWeatherClient validates the key and returns a client.
func NewOpenWeatherClient(apiKey, weatherURL, alertsURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("%w: API key appears invalid (too short)", ErrInvalidAPIKey)
	}

	return &OpenWeatherClient{
		apiKey:     apiKey,
		weatherURL: weatherURL,
		alertsURL:  alertsURL,
		timeout:    timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchCurrent performs the primary call: current conditions by location
// name, in the requested unit system.
func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, location string, system units.System) (RawCurrent, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", system.APIToken())

	var raw RawCurrent
	if err := c.getJSON(ctx, "current", c.weatherURL, params, &raw); err != nil {
		return RawCurrent{}, err
	}
	return raw, nil
}

// FetchAlerts performs the secondary call: active alerts by coordinate.
// Coordinates come from a prior successful FetchCurrent. Failures here
// carry no more weight than the caller gives them.
func (c *OpenWeatherClient) FetchAlerts(ctx context.Context, lat, lon float64) (RawAlerts, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("exclude", "current,minutely,hourly,daily")
	params.Set("appid", c.apiKey)

	var raw RawAlerts
	if err := c.getJSON(ctx, "alerts", c.alertsURL, params, &raw); err != nil {
		return RawAlerts{}, err
	}
	return raw, nil
}

// getJSON performs one GET round trip and classifies the outcome:
// transport failure wraps ErrNetwork, non-2xx becomes *APIError with the
// body preserved, an unreadable or malformed body wraps ErrDecode.
// endpoint is the metric label for the call (current, alerts).
func (c *OpenWeatherClient) getJSON(ctx context.Context, endpoint, apiURL string, params url.Values, out interface{}) error {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, apiURL, params)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("build request: %w", err)
	}

	corrID := extractCorrelationID(ctx)
	if corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.WeatherAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		observability.WeatherAPIDuration.WithLabelValues(endpoint, "error").Observe(duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: request timeout: %v", ErrNetwork, err)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(endpoint, status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(endpoint, status).Observe(duration)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", ErrDecode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: parse response: %v", ErrDecode, err)
	}
	return nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, apiURL string, params url.Values) (*http.Request, error) {
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

// ValidateAPIKey probes the current-weather endpoint with a fixed
// location to detect an invalid or not-yet-activated key. Used by the
// health handler, never on the retrieval path.
func (c *OpenWeatherClient) ValidateAPIKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("q", "London")
	params.Set("appid", c.apiKey)
	params.Set("units", units.Metric.APIToken())

	req, err := c.buildRequest(ctx, c.weatherURL, params)
	if err != nil {
		return fmt.Errorf("build validation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: API key is invalid or not activated", ErrInvalidAPIKey)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation failed: HTTP %d", resp.StatusCode)
	}

	return nil
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value("correlation_id"); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

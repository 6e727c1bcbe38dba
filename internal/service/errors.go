package service

import (
	"errors"

	"github.com/kjstillabower/weather-session-service/internal/client"
)

var (
	// ErrInvalidInput is returned for an empty, malformed, or
	// out-of-bounds location query. No network call was made.
	ErrInvalidInput = errors.New("invalid location query")

	// ErrMalformedResponse is returned when the primary payload decoded
	// but could not be normalized into a snapshot.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// Kind is the caller-facing classification of a retrieval failure.
// Every kind is a per-request, recoverable outcome; nothing here is
// fatal to the process.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNetwork           Kind = "network"
	KindAPI               Kind = "api"
	KindMalformedResponse Kind = "malformed_response"
	KindUnknown           Kind = "unknown"
)

// Classify maps a Fetch error to its Kind so callers can branch on the
// failure class instead of parsing message text. Upstream status and
// body detail stay reachable through errors.As on *client.APIError.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, client.ErrNetwork):
		return KindNetwork
	case errors.Is(err, client.ErrDecode):
		return KindMalformedResponse
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}
	return KindUnknown
}

package normalize

import (
	"errors"
	"time"

	"github.com/kjstillabower/weather-session-service/internal/client"
	"github.com/kjstillabower/weather-session-service/internal/models"
	"github.com/kjstillabower/weather-session-service/internal/units"
)

// ErrMissingCondition is returned when the raw payload carries no
// condition entries. The upstream contract promises at least one; an
// empty list means the payload cannot be presented.
var ErrMissingCondition = errors.New("weather payload has no condition entries")

// Snapshot merges a raw current-weather payload with an optional alerts
// payload into an immutable WeatherSnapshot.
//
// Numeric fields pass through unchanged: the upstream service already
// returned them in the requested unit system. The one conversion owned
// here is visibility, reported upstream in meters regardless of unit
// system and stored on the snapshot in kilometers.
//
// A nil alerts payload (the secondary call was skipped or failed) yields
// an empty alert list, never an error.
func Snapshot(raw client.RawCurrent, alerts *client.RawAlerts, system units.System) (models.WeatherSnapshot, error) {
	if len(raw.Weather) == 0 {
		return models.WeatherSnapshot{}, ErrMissingCondition
	}

	condition := raw.Weather[0].Main
	if raw.Weather[0].Description != "" {
		condition = raw.Weather[0].Description
	}

	snap := models.WeatherSnapshot{
		Location:     raw.Name,
		Temperature:  raw.Main.Temp,
		Units:        system.APIToken(),
		Humidity:     raw.Main.Humidity,
		Pressure:     raw.Main.Pressure,
		Conditions:   condition,
		WindSpeed:    raw.Wind.Speed,
		WindDeg:      raw.Wind.Deg,
		VisibilityKm: float64(raw.VisibilityMeters) / 1000,
		Latitude:     raw.Coord.Lat,
		Longitude:    raw.Coord.Lon,
		Alerts:       mapAlerts(alerts),
		Timestamp:    time.Now(),
	}
	return snap, nil
}

// mapAlerts copies upstream alerts in received order. Absent payload or
// absent alerts array both degrade to an empty list.
func mapAlerts(alerts *client.RawAlerts) []models.Alert {
	out := make([]models.Alert, 0)
	if alerts == nil {
		return out
	}
	for _, a := range alerts.Alerts {
		out = append(out, models.Alert{
			SenderName:  a.SenderName,
			Event:       a.Event,
			Start:       time.Unix(a.Start, 0).UTC(),
			End:         time.Unix(a.End, 0).UTC(),
			Description: a.Description,
		})
	}
	return out
}

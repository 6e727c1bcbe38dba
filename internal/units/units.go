package units

import "strings"

// System is the active measurement system for a retrieval.
type System int

const (
	// Metric is the default system: Celsius, meters/second, kilometers.
	Metric System = iota
	// Imperial: Fahrenheit, miles/hour, miles.
	Imperial
)

// Parse maps a query-string token to a System. Unrecognized or empty
// input falls back to Metric rather than failing; the unit choice is a
// preference, not a validation surface.
func Parse(s string) System {
	if strings.EqualFold(strings.TrimSpace(s), "imperial") {
		return Imperial
	}
	return Metric
}

// APIToken returns the unit vocabulary the upstream API expects.
func (s System) APIToken() string {
	if s == Imperial {
		return "imperial"
	}
	return "metric"
}

// String returns the same token as APIToken; the wire vocabulary doubles
// as the display name.
func (s System) String() string {
	return s.APIToken()
}

// TemperatureSuffix returns the display suffix for temperatures.
func (s System) TemperatureSuffix() string {
	if s == Imperial {
		return "°F"
	}
	return "°C"
}

// WindSpeedSuffix returns the display suffix for wind speeds.
func (s System) WindSpeedSuffix() string {
	if s == Imperial {
		return "mph"
	}
	return "m/s"
}

// DistanceSuffix returns the display suffix for distances such as visibility.
func (s System) DistanceSuffix() string {
	if s == Imperial {
		return "mi"
	}
	return "km"
}

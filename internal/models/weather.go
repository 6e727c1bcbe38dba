package models

import "time"

// WeatherSnapshot is the normalized result of one successful retrieval.
// It is built once by the normalizer and never mutated; the next
// successful retrieval supersedes it with a new value.
type WeatherSnapshot struct {
	Location     string    `json:"location"`
	Temperature  float64   `json:"temperature"`
	Units        string    `json:"units"`
	Humidity     int       `json:"humidity"`
	Pressure     int       `json:"pressure"`
	Conditions   string    `json:"conditions"`
	WindSpeed    float64   `json:"windSpeed"`
	WindDeg      int       `json:"windDeg"`
	VisibilityKm float64   `json:"visibilityKm"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Alerts       []Alert   `json:"alerts"`
	Timestamp    time.Time `json:"timestamp"`
}

// Alert is an active weather alert attached to a snapshot. Order within
// a snapshot matches the order the upstream source returned them.
type Alert struct {
	SenderName  string    `json:"senderName"`
	Event       string    `json:"event"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
}

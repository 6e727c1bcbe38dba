package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/kjstillabower/weather-session-service/internal/client"
	"github.com/kjstillabower/weather-session-service/internal/units"
)

func rawLondon() client.RawCurrent {
	var raw client.RawCurrent
	raw.Name = "London"
	raw.Main.Temp = 15.0
	raw.Main.Humidity = 72
	raw.Main.Pressure = 1012
	raw.Weather = []client.RawCondition{
		{Main: "Clouds", Description: "few clouds"},
	}
	raw.Wind.Speed = 3.1
	raw.Wind.Deg = 200
	raw.VisibilityMeters = 10000
	raw.Coord.Lat = 51.5
	raw.Coord.Lon = -0.12
	return raw
}

func TestSnapshot_MapsAllFields(t *testing.T) {
	snap, err := Snapshot(rawLondon(), nil, units.Metric)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if snap.Location != "London" {
		t.Errorf("Location = %q, want %q", snap.Location, "London")
	}
	if snap.Temperature != 15.0 {
		t.Errorf("Temperature = %v, want %v", snap.Temperature, 15.0)
	}
	if snap.Units != "metric" {
		t.Errorf("Units = %q, want %q", snap.Units, "metric")
	}
	if snap.Humidity != 72 {
		t.Errorf("Humidity = %d, want %d", snap.Humidity, 72)
	}
	if snap.Pressure != 1012 {
		t.Errorf("Pressure = %d, want %d", snap.Pressure, 1012)
	}
	if snap.Conditions != "few clouds" {
		t.Errorf("Conditions = %q, want %q", snap.Conditions, "few clouds")
	}
	if snap.WindSpeed != 3.1 {
		t.Errorf("WindSpeed = %v, want %v", snap.WindSpeed, 3.1)
	}
	if snap.WindDeg != 200 {
		t.Errorf("WindDeg = %d, want %d", snap.WindDeg, 200)
	}
	if snap.Latitude != 51.5 || snap.Longitude != -0.12 {
		t.Errorf("coords = (%v, %v), want (51.5, -0.12)", snap.Latitude, snap.Longitude)
	}
	if snap.Timestamp.IsZero() {
		t.Errorf("Timestamp is zero, want retrieval time")
	}
}

// Visibility arrives in meters and is stored in kilometers.
func TestSnapshot_VisibilityMetersToKilometers(t *testing.T) {
	raw := rawLondon()
	raw.VisibilityMeters = 10000

	snap, err := Snapshot(raw, nil, units.Metric)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.VisibilityKm != 10.0 {
		t.Errorf("VisibilityKm = %v, want %v", snap.VisibilityKm, 10.0)
	}
}

func TestSnapshot_NilAlertsYieldsEmptyList(t *testing.T) {
	snap, err := Snapshot(rawLondon(), nil, units.Metric)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Alerts == nil {
		t.Fatalf("Alerts = nil, want empty slice")
	}
	if len(snap.Alerts) != 0 {
		t.Errorf("len(Alerts) = %d, want 0", len(snap.Alerts))
	}
}

func TestSnapshot_AlertsPreserveOrder(t *testing.T) {
	alerts := &client.RawAlerts{
		Alerts: []client.RawAlert{
			{SenderName: "NWS", Event: "Flood Warning", Start: 1700000000, End: 1700086400, Description: "river flooding"},
			{SenderName: "NWS", Event: "Wind Advisory", Start: 1700001000, End: 1700044600, Description: "gusty winds"},
		},
	}

	snap, err := Snapshot(rawLondon(), alerts, units.Metric)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(snap.Alerts) != 2 {
		t.Fatalf("len(Alerts) = %d, want 2", len(snap.Alerts))
	}
	if snap.Alerts[0].Event != "Flood Warning" || snap.Alerts[1].Event != "Wind Advisory" {
		t.Errorf("alert order not preserved: got %q, %q", snap.Alerts[0].Event, snap.Alerts[1].Event)
	}
	wantStart := time.Unix(1700000000, 0).UTC()
	if !snap.Alerts[0].Start.Equal(wantStart) {
		t.Errorf("Alerts[0].Start = %v, want %v", snap.Alerts[0].Start, wantStart)
	}
	if snap.Alerts[0].Description != "river flooding" {
		t.Errorf("Alerts[0].Description = %q, want %q", snap.Alerts[0].Description, "river flooding")
	}
}

func TestSnapshot_EmptyConditionList(t *testing.T) {
	raw := rawLondon()
	raw.Weather = raw.Weather[:0]

	_, err := Snapshot(raw, nil, units.Metric)
	if err == nil {
		t.Fatalf("Snapshot() expected error for empty condition list")
	}
	if !errors.Is(err, ErrMissingCondition) {
		t.Errorf("Snapshot() error = %v, want ErrMissingCondition", err)
	}
}

func TestSnapshot_FallsBackToMainWhenDescriptionEmpty(t *testing.T) {
	raw := rawLondon()
	raw.Weather[0].Description = ""

	snap, err := Snapshot(raw, nil, units.Metric)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Conditions != "Clouds" {
		t.Errorf("Conditions = %q, want %q", snap.Conditions, "Clouds")
	}
}

func TestSnapshot_ImperialUnitsTagged(t *testing.T) {
	snap, err := Snapshot(rawLondon(), nil, units.Imperial)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Units != "imperial" {
		t.Errorf("Units = %q, want %q", snap.Units, "imperial")
	}
}

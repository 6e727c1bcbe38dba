package icons

import "strings"

// ID identifies a weather icon asset. The presentation layer maps IDs to
// whatever assets it ships; nothing here touches rendering.
type ID string

const (
	IDClear        ID = "clear"
	IDFewClouds    ID = "few_clouds"
	IDCloudy       ID = "cloudy"
	IDRainShowers  ID = "rain_showers"
	IDRain         ID = "rain"
	IDThunderstorm ID = "thunderstorm"
	IDSnow         ID = "snow"
	IDMist         ID = "mist"
	// IDDefault is returned for any condition text without a mapping.
	// Unknown conditions are expected, not an error.
	IDDefault ID = "default"
)

// conditionIcons maps OpenWeatherMap condition descriptions to icon IDs.
// Keys are lowercase; lookup is case-insensitive exact match.
var conditionIcons = map[string]ID{
	"clear sky":        IDClear,
	"few clouds":       IDFewClouds,
	"scattered clouds": IDCloudy,
	"broken clouds":    IDCloudy,
	"overcast clouds":  IDCloudy,
	"shower rain":      IDRainShowers,
	"light rain":       IDRain,
	"moderate rain":    IDRain,
	"rain":             IDRain,
	"thunderstorm":     IDThunderstorm,
	"snow":             IDSnow,
	"light snow":       IDSnow,
	"mist":             IDMist,
	"fog":              IDMist,
	"haze":             IDMist,
}

// Resolve maps a condition description to an icon ID. Matching is
// case-insensitive; unmatched input yields IDDefault.
func Resolve(condition string) ID {
	if id, ok := conditionIcons[strings.ToLower(strings.TrimSpace(condition))]; ok {
		return id
	}
	return IDDefault
}

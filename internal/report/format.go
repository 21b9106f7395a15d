// Package report composes per-location weather data into plain-text and HTML
// reports and orchestrates the fetch-format-narrate-render-send pipeline.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/i474232898/weather-reporter/internal/weather"
)

// Input bundles everything needed to render one location's report.
type Input struct {
	Location  weather.Location
	Current   weather.CurrentConditions
	Forecast  []weather.ForecastPoint
	Pollution weather.AirPollution
}

// FormatText renders the deterministic plain-text report for one location.
// All provider timestamps are UTC epoch seconds and are displayed in tz.
// "Today" for the expected temperature range is the calendar date of the
// current-conditions timestamp in tz.
func FormatText(in Input, prefs weather.Preferences, tz *time.Location) (string, error) {
	if len(in.Current.Weather) == 0 {
		return "", fmt.Errorf("current conditions for %s missing weather block", in.Location.Key())
	}

	current := in.Current
	generatedAt := time.Unix(current.Dt, 0).In(tz)

	var b strings.Builder
	fmt.Fprintf(&b, "Weather report for %s:\n\n", in.Location.Label())
	fmt.Fprintf(&b, "Report generated at: %s\n\n", generatedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "Current weather: %s\n", weather.ConditionLabel(current.Weather[0].ID))

	if prefs.Temperature {
		temp := current.Main.Temp
		feelsLike := current.Main.FeelsLike
		fmt.Fprintf(&b, "Current temperature: %.1f°C (%.1f°F)\n", temp, weather.CelsiusToFahrenheit(temp))
		fmt.Fprintf(&b, "Feels like: %.1f°C (%.1f°F)\n", feelsLike, weather.CelsiusToFahrenheit(feelsLike))

		if max, min, ok := weather.DailyExtremes(in.Forecast, generatedAt, tz); ok {
			fmt.Fprintf(&b, "Today's expected temperature range: %.1f°C to %.1f°C ", min, max)
			fmt.Fprintf(&b, "(%.1f°F to %.1f°F)\n",
				weather.CelsiusToFahrenheit(min), weather.CelsiusToFahrenheit(max))
		}
	}
	if prefs.Humidity {
		fmt.Fprintf(&b, "Humidity: %d%%\n", current.Main.Humidity)
	}
	if prefs.WindSpeed {
		fmt.Fprintf(&b, "Wind speed: %v m/s\n", current.Wind.Speed)
		if current.Wind.Deg != nil {
			fmt.Fprintf(&b, "Wind direction: %v°\n", *current.Wind.Deg)
		} else {
			b.WriteString("Wind direction: N/A\n")
		}
	}
	if prefs.Cloudiness {
		fmt.Fprintf(&b, "Cloudiness: %d%%\n", current.Clouds.All)
	}

	fmt.Fprintf(&b, "Atmospheric Pressure: %d hPa\n", current.Main.Pressure)

	if current.Visibility != nil {
		fmt.Fprintf(&b, "Visibility: %.1f km\n", float64(*current.Visibility)/1000)
	}

	sunrise := time.Unix(current.Sys.Sunrise, 0).In(tz)
	sunset := time.Unix(current.Sys.Sunset, 0).In(tz)
	fmt.Fprintf(&b, "Sunrise: %s\n", sunrise.Format("15:04 MST"))
	fmt.Fprintf(&b, "Sunset: %s\n", sunset.Format("15:04 MST"))
	// Renders negative if the provider ever reports sunset before sunrise.
	fmt.Fprintf(&b, "Day length: %s\n", sunset.Sub(sunrise))

	aqi, ok := in.Pollution.AQI()
	if !ok {
		return "", fmt.Errorf("air pollution data for %s has no readings", in.Location.Key())
	}
	aqiLabel, err := weather.AQILabel(aqi)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Air Quality Index: %s\n\n", aqiLabel)

	b.WriteString("5-day forecast:\n")
	for _, point := range weather.FiveDayOutlook(in.Forecast) {
		date := time.Unix(point.Dt, 0).In(tz)
		description := ""
		if len(point.Weather) > 0 {
			description = capitalize(point.Weather[0].Description)
		}
		fmt.Fprintf(&b, "%s: %.1f°C (%.1f°F), %s, %.0f%% chance of precipitation\n",
			date.Format("2006-01-02"),
			point.Main.Temp,
			weather.CelsiusToFahrenheit(point.Main.Temp),
			description,
			point.Pop*100)
	}

	return b.String(), nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

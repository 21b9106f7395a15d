package weather

import "fmt"

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32
}

// ConditionLabel maps an OpenWeatherMap condition code to its group label.
// The provider assigns codes in bands: 2xx thunderstorm, 3xx drizzle,
// 5xx rain, 6xx snow, 7xx atmosphere, 800 clear, 80x clouds.
func ConditionLabel(code int) string {
	switch {
	case code < 300:
		return "Thunderstorm"
	case code < 500:
		return "Drizzle"
	case code < 600:
		return "Rain"
	case code < 700:
		return "Snow"
	case code < 800:
		return "Atmosphere"
	case code == 800:
		return "Clear"
	default:
		return "Clouds"
	}
}

var aqiLabels = map[int]string{
	1: "Good",
	2: "Fair",
	3: "Moderate",
	4: "Poor",
	5: "Very Poor",
}

// AQILabel maps the ordinal 1-5 air quality index to its label. An index
// outside the documented scale is an error, not a silent default.
func AQILabel(index int) (string, error) {
	label, ok := aqiLabels[index]
	if !ok {
		return "", fmt.Errorf("air quality index %d outside documented 1-5 scale", index)
	}
	return label, nil
}

package weather

// Location represents a logical place for which a report is generated.
// City/Country must be provided.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for logging and indexing this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Label returns the human-readable "City, Country" form used in reports.
func (l Location) Label() string {
	return l.City + ", " + l.Country
}

// Preferences control which optional lines appear in a formatted report.
type Preferences struct {
	Temperature bool `json:"temperature"`
	Humidity    bool `json:"humidity"`
	WindSpeed   bool `json:"windSpeed"`
	Cloudiness  bool `json:"cloudiness"`
}

// DefaultPreferences returns the preference set applied when a request omits
// the preferences block: temperature on, everything else off.
func DefaultPreferences() Preferences {
	return Preferences{Temperature: true}
}

// ConditionInfo is the provider's weather condition block shared by the
// current-conditions and forecast payloads.
type ConditionInfo struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions is the subset of the OpenWeatherMap current weather
// payload the report pipeline consumes. All timestamps are UTC epoch seconds.
type CurrentConditions struct {
	Dt    int64 `json:"dt"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64  `json:"speed"`
		Deg   *float64 `json:"deg"` // nil when the provider omits direction
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	// Visibility in metres; nil when the provider omits the field.
	Visibility *int            `json:"visibility"`
	Weather    []ConditionInfo `json:"weather"`
	Sys        struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

// ForecastPoint is one 3-hour-resolution entry of the 5-day forecast feed.
type ForecastPoint struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp    float64 `json:"temp"`
		TempMin float64 `json:"temp_min"`
		TempMax float64 `json:"temp_max"`
	} `json:"main"`
	Weather []ConditionInfo `json:"weather"`
	// Pop is the probability of precipitation, 0..1.
	Pop float64 `json:"pop"`
}

// PollutionEntry is one reading of the air pollution payload.
type PollutionEntry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
}

// AirPollution is the provider's air pollution payload. Only the ordinal
// air quality index of the first reading is consumed.
type AirPollution struct {
	List []PollutionEntry `json:"list"`
}

// AQI returns the air quality index of the first reading. ok is false when
// the provider returned an empty list.
func (p AirPollution) AQI() (int, bool) {
	if len(p.List) == 0 {
		return 0, false
	}
	return p.List[0].Main.AQI, true
}

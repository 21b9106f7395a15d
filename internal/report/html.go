package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/i474232898/weather-reporter/internal/weather"
)

// htmlData feeds the per-location report template.
type htmlData struct {
	Location        string
	Timestamp       string
	Temperature     float64
	FeelsLike       float64
	Humidity        int
	WindSpeed       float64
	Description     string
	AirQuality      string
	AirQualityColor string
	Sunrise         string
	Sunset          string
	AISummary       string
	Forecast        []forecastCard
}

type forecastCard struct {
	Day         string
	Icon        string
	Temp        float64
	Description string
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// RenderHTML renders one location's self-contained HTML report fragment with
// inline styling. Fragments for multiple locations are concatenated by the
// caller in request order.
func RenderHTML(in Input, aiSummary string, tz *time.Location) (string, error) {
	if len(in.Current.Weather) == 0 {
		return "", fmt.Errorf("current conditions for %s missing weather block", in.Location.Key())
	}

	aqi, ok := in.Pollution.AQI()
	if !ok {
		return "", fmt.Errorf("air pollution data for %s has no readings", in.Location.Key())
	}
	aqiLabel, err := weather.AQILabel(aqi)
	if err != nil {
		return "", err
	}
	aqiColor := "green"
	if aqi >= 3 {
		aqiColor = "red"
	}

	current := in.Current
	data := htmlData{
		Location:        in.Location.Label(),
		Timestamp:       time.Unix(current.Dt, 0).In(tz).Format("2006-01-02 15:04:05"),
		Temperature:     current.Main.Temp,
		FeelsLike:       current.Main.FeelsLike,
		Humidity:        current.Main.Humidity,
		WindSpeed:       current.Wind.Speed,
		Description:     current.Weather[0].Description,
		AirQuality:      aqiLabel,
		AirQualityColor: aqiColor,
		Sunrise:         time.Unix(current.Sys.Sunrise, 0).In(tz).Format("15:04"),
		Sunset:          time.Unix(current.Sys.Sunset, 0).In(tz).Format("15:04"),
		AISummary:       aiSummary,
	}

	for _, point := range weather.FiveDayOutlook(in.Forecast) {
		card := forecastCard{
			Day:  time.Unix(point.Dt, 0).In(tz).Format("2006-01-02"),
			Temp: point.Main.Temp,
		}
		if len(point.Weather) > 0 {
			card.Icon = point.Weather[0].Icon
			card.Description = point.Weather[0].Description
		}
		data.Forecast = append(data.Forecast, card)
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return b.String(), nil
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Weather Report - {{.Location}}</title>
    <style>
        :root {
            --primary-color: #1a73e8;
            --text-color: #202124;
            --secondary-text: #5f6368;
            --background: #ffffff;
            --card-shadow: 0 1px 3px rgba(0,0,0,0.12);
        }
        body {
            font-family: 'Segoe UI', Arial, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f0f5ff;
            color: var(--text-color);
        }
        .weather-card {
            background: var(--background);
            border-radius: 12px;
            padding: 24px;
            max-width: 800px;
            margin: 0 auto;
            box-shadow: var(--card-shadow);
        }
        .location {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 20px;
        }
        .current-weather {
            display: grid;
            grid-template-columns: auto 1fr;
            gap: 20px;
            margin-bottom: 30px;
        }
        .temperature {
            font-size: 48px;
            font-weight: 400;
        }
        .weather-details {
            display: grid;
            grid-template-columns: repeat(2, 1fr);
            gap: 16px;
            margin: 20px 0;
        }
        .detail-item {
            display: flex;
            align-items: center;
            gap: 8px;
        }
        .forecast {
            display: grid;
            grid-template-columns: repeat(5, 1fr);
            gap: 16px;
            margin-top: 30px;
            text-align: center;
        }
        .forecast-day {
            padding: 12px;
            border-radius: 8px;
            background: #f8f9fa;
        }
        .air-quality {
            color: {{.AirQualityColor}};
            font-weight: 500;
        }
    </style>
</head>
<body>
    <div class="weather-card">
        <div class="location">
            <div>
                <h2>{{.Location}}</h2>
            </div>
            <div>{{.Timestamp}}</div>
        </div>

        <div class="current-weather">
            <div class="temperature">
                {{printf "%.1f" .Temperature}}°C
                <div style="font-size: 16px;">{{.Description}}</div>
            </div>

            <div class="weather-details">
                <div class="detail-item">
                    <span>Feels Like</span>
                    <span>{{printf "%.1f" .FeelsLike}}°C</span>
                </div>
                <div class="detail-item">
                    <span>Humidity</span>
                    <span>{{.Humidity}}%</span>
                </div>
                <div class="detail-item">
                    <span>Wind</span>
                    <span>{{.WindSpeed}} m/s</span>
                </div>
                <div class="detail-item">
                    <span>Air Quality</span>
                    <span class="air-quality">{{.AirQuality}}</span>
                </div>
                <div class="detail-item">
                    <span>Sunrise</span>
                    <span>{{.Sunrise}}</span>
                </div>
                <div class="detail-item">
                    <span>Sunset</span>
                    <span>{{.Sunset}}</span>
                </div>
            </div>
        </div>

        <hr style="border: none; border-top: 1px solid #e0e0e0; margin: 24px 0;">
        <div class="ai-summary" style="padding: 16px; background: #f8f9fa; border-radius: 8px; margin-bottom: 24px; line-height: 1.5;">
            {{.AISummary}}
        </div>

        <div class="forecast">
            {{range .Forecast}}
            <div class="forecast-day">
                <div class="day">{{.Day}}</div>
                <div class="weather-icon">
                    <img src="path_to_icons/{{.Icon}}.svg" alt="{{.Description}}">
                </div>
                <div class="temp">{{printf "%.1f" .Temp}}°C</div>
                <div class="description">{{.Description}}</div>
            </div>
            {{end}}
        </div>
    </div>
</body>
</html>
`

// Package openweather implements the OpenWeatherMap lookups the report
// pipeline depends on: current conditions, 3-hour forecast, and air pollution.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-reporter/internal/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client talks to the OpenWeatherMap REST API. All lookups request metric units.
type Client struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client using the shared outbound HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = base
	return c
}

// Current fetches current conditions for a city+country query.
func (c *Client) Current(ctx context.Context, loc weather.Location) (weather.CurrentConditions, error) {
	var payload weather.CurrentConditions
	if err := c.get(ctx, "/weather", locationQuery(loc), &payload); err != nil {
		return weather.CurrentConditions{}, fmt.Errorf("current conditions for %s: %w", loc.Key(), err)
	}
	return payload, nil
}

// Forecast fetches the 5-day/3-hour forecast list for a city+country query.
func (c *Client) Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastPoint, error) {
	var payload struct {
		List []weather.ForecastPoint `json:"list"`
	}
	if err := c.get(ctx, "/forecast", locationQuery(loc), &payload); err != nil {
		return nil, fmt.Errorf("forecast for %s: %w", loc.Key(), err)
	}
	return payload.List, nil
}

// AirPollution fetches the air pollution reading for coordinates, typically
// taken from a preceding Current response.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (weather.AirPollution, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var payload weather.AirPollution
	if err := c.get(ctx, "/air_pollution", values, &payload); err != nil {
		return weather.AirPollution{}, fmt.Errorf("air pollution at %f,%f: %w", lat, lon, err)
	}
	return payload, nil
}

func locationQuery(loc weather.Location) url.Values {
	values := url.Values{}
	q := loc.City
	if loc.Country != "" {
		q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
	}
	values.Set("q", q)
	return values
}

func (c *Client) get(ctx context.Context, path string, values url.Values, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		v := url.Values{}
		for key, vals := range values {
			v[key] = vals
		}
		v.Set("appid", c.apiKey)
		v.Set("units", "metric")

		u := fmt.Sprintf("%s%s?%s", c.baseURL, path, v.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/weather-reporter/internal/weather"
)

func TestCurrentRequestAndDecode(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"dt": 1717243200,
			"coord": {"lat": 19.07, "lon": 72.88},
			"main": {"temp": 30.2, "feels_like": 34.1, "humidity": 74, "pressure": 1005},
			"wind": {"speed": 4.6, "deg": 250},
			"clouds": {"all": 40},
			"visibility": 6000,
			"weather": [{"id": 721, "main": "Haze", "description": "haze", "icon": "50d"}],
			"sys": {"sunrise": 1717201320, "sunset": 1717248540}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "test-key").WithBaseURL(srv.URL)

	current, err := client.Current(context.Background(), weather.Location{City: "Mumbai", Country: "IN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/weather" {
		t.Errorf("expected path /weather, got %s", gotPath)
	}
	if gotQuery["q"] != "Mumbai,IN" || gotQuery["appid"] != "test-key" || gotQuery["units"] != "metric" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}
	if current.Main.Temp != 30.2 || current.Coord.Lat != 19.07 {
		t.Errorf("payload not decoded: %+v", current)
	}
	if current.Visibility == nil || *current.Visibility != 6000 {
		t.Errorf("expected visibility 6000, got %v", current.Visibility)
	}
	if len(current.Weather) != 1 || current.Weather[0].ID != 721 {
		t.Errorf("weather block not decoded: %+v", current.Weather)
	}
}

func TestCurrentMissingOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dt": 1717243200, "main": {"temp": 10}, "wind": {"speed": 2.0}, "weather": [{"id": 800}], "sys": {}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "test-key").WithBaseURL(srv.URL)

	current, err := client.Current(context.Background(), weather.Location{City: "Oslo", Country: "NO"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Visibility != nil {
		t.Errorf("expected nil visibility, got %v", *current.Visibility)
	}
	if current.Wind.Deg != nil {
		t.Errorf("expected nil wind direction, got %v", *current.Wind.Deg)
	}
}

func TestAirPollutionQuery(t *testing.T) {
	var gotLat, gotLon string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/air_pollution" {
			t.Errorf("expected path /air_pollution, got %s", r.URL.Path)
		}
		gotLat = r.URL.Query().Get("lat")
		gotLon = r.URL.Query().Get("lon")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list": [{"main": {"aqi": 3}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), "test-key").WithBaseURL(srv.URL)

	pollution, err := client.AirPollution(context.Background(), 19.07, 72.88)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLat != "19.07" || gotLon != "72.88" {
		t.Errorf("unexpected coordinates: lat=%s lon=%s", gotLat, gotLon)
	}
	aqi, ok := pollution.AQI()
	if !ok || aqi != 3 {
		t.Errorf("expected AQI 3, got %d (ok=%v)", aqi, ok)
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient(http.DefaultClient, "")
	if _, err := client.Current(context.Background(), weather.Location{City: "Paris", Country: "FR"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

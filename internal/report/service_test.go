package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-reporter/internal/weather"
)

type stubWeather struct {
	currentCalls   int
	forecastCalls  int
	pollutionCalls int
	lastLat        float64
	lastLon        float64

	currentErr error
	input      Input
}

func (s *stubWeather) Current(_ context.Context, loc weather.Location) (weather.CurrentConditions, error) {
	s.currentCalls++
	if s.currentErr != nil {
		return weather.CurrentConditions{}, s.currentErr
	}
	return s.input.Current, nil
}

func (s *stubWeather) Forecast(_ context.Context, loc weather.Location) ([]weather.ForecastPoint, error) {
	s.forecastCalls++
	return s.input.Forecast, nil
}

func (s *stubWeather) AirPollution(_ context.Context, lat, lon float64) (weather.AirPollution, error) {
	s.pollutionCalls++
	s.lastLat, s.lastLon = lat, lon
	return s.input.Pollution, nil
}

type stubNarrator struct {
	calls int
	err   error
}

func (s *stubNarrator) Narrate(_ context.Context, report string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "AI-generated summary:\nnarrated", nil
}

type stubSender struct {
	calls   int
	lastTo  []string
	subject string
	body    string
	html    bool
	err     error
}

func (s *stubSender) Send(_ context.Context, recipients []string, subject, body string, html bool) error {
	s.calls++
	s.lastTo = recipients
	s.subject = subject
	s.body = body
	s.html = html
	return s.err
}

func newTestService(t *testing.T) (*Service, *stubWeather, *stubNarrator, *stubSender) {
	t.Helper()
	w := &stubWeather{input: testInput()}
	n := &stubNarrator{}
	sender := &stubSender{}
	return NewService(w, n, sender, true), w, n, sender
}

func TestRunSingleLocationCallCounts(t *testing.T) {
	svc, w, n, sender := newTestService(t)

	req := Request{
		Locations:   []weather.Location{{City: "Mumbai", Country: "IN"}},
		Preferences: weather.DefaultPreferences(),
		Recipients:  []string{"someone@example.com"},
		Timezone:    "Asia/Kolkata",
	}

	if err := svc.Run(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.currentCalls != 1 || w.forecastCalls != 1 || w.pollutionCalls != 1 {
		t.Errorf("expected one call per weather lookup, got current=%d forecast=%d pollution=%d",
			w.currentCalls, w.forecastCalls, w.pollutionCalls)
	}
	if n.calls != 1 {
		t.Errorf("expected one narration call, got %d", n.calls)
	}
	if sender.calls != 1 {
		t.Errorf("expected one email send, got %d", sender.calls)
	}
	if !sender.html {
		t.Error("expected HTML body")
	}
	if !strings.HasPrefix(sender.subject, "Weather Report - ") {
		t.Errorf("unexpected subject: %q", sender.subject)
	}
	if len(sender.lastTo) != 1 || sender.lastTo[0] != "someone@example.com" {
		t.Errorf("unexpected recipients: %v", sender.lastTo)
	}
}

func TestRunMultiLocationConcatenatesInOrder(t *testing.T) {
	svc, _, _, sender := newTestService(t)

	req := Request{
		Locations: []weather.Location{
			{City: "Mumbai", Country: "IN"},
			{City: "Delhi", Country: "IN"},
		},
		Preferences: weather.DefaultPreferences(),
		Recipients:  []string{"someone@example.com"},
		Timezone:    "UTC",
	}

	if err := svc.Run(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected exactly one send for the whole batch, got %d", sender.calls)
	}
	first := strings.Index(sender.body, "Mumbai, IN")
	second := strings.Index(sender.body, "Delhi, IN")
	if first < 0 || second < 0 {
		t.Fatalf("body missing a location section:\n%s", sender.body)
	}
	if first > second {
		t.Error("location sections out of request order")
	}
}

func TestRunNarrationFailureAbortsDelivery(t *testing.T) {
	svc, _, n, sender := newTestService(t)
	n.err = errors.New("model unavailable")

	req := Request{
		Locations:  []weather.Location{{City: "Mumbai", Country: "IN"}},
		Recipients: []string{"someone@example.com"},
		Timezone:   "UTC",
	}

	if err := svc.Run(context.Background(), req); err == nil {
		t.Fatal("expected narration error to abort the batch")
	}
	if sender.calls != 0 {
		t.Errorf("no email may be sent after a narration failure, got %d sends", sender.calls)
	}
}

func TestRunWeatherFailureAbortsBatch(t *testing.T) {
	svc, w, n, sender := newTestService(t)
	w.currentErr = errors.New("city not found")

	req := Request{
		Locations: []weather.Location{
			{City: "Nowhere", Country: "XX"},
			{City: "Mumbai", Country: "IN"},
		},
		Recipients: []string{"someone@example.com"},
		Timezone:   "UTC",
	}

	if err := svc.Run(context.Background(), req); err == nil {
		t.Fatal("expected weather error to abort the batch")
	}
	if w.currentCalls != 1 {
		t.Errorf("batch must abort on the first failing location, got %d current calls", w.currentCalls)
	}
	if n.calls != 0 || sender.calls != 0 {
		t.Error("no narration or delivery may happen after a weather failure")
	}
}

func TestRunDeliveryFailureSwallowed(t *testing.T) {
	svc, _, _, sender := newTestService(t)
	sender.err = errors.New("provider rejected the message")

	req := Request{
		Locations:  []weather.Location{{City: "Mumbai", Country: "IN"}},
		Recipients: []string{"someone@example.com"},
		Timezone:   "UTC",
	}

	if err := svc.Run(context.Background(), req); err != nil {
		t.Fatalf("delivery failure must be swallowed, got %v", err)
	}
	if sender.calls != 1 {
		t.Errorf("expected one send attempt, got %d", sender.calls)
	}
}

func TestRunInvalidTimezone(t *testing.T) {
	svc, w, _, sender := newTestService(t)

	req := Request{
		Locations:  []weather.Location{{City: "Mumbai", Country: "IN"}},
		Recipients: []string{"someone@example.com"},
		Timezone:   "Not/AZone",
	}

	if err := svc.Run(context.Background(), req); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
	if w.currentCalls != 0 || sender.calls != 0 {
		t.Error("nothing may be fetched or sent when the timezone cannot be loaded")
	}
}

func TestRunGeocodeFallback(t *testing.T) {
	svc, w, _, _ := newTestService(t)
	w.input.Current.Coord.Lat = 0
	w.input.Current.Coord.Lon = 0
	svc.Geocode = func(loc weather.Location) (float64, float64, error) {
		return 48.85, 2.35, nil
	}

	req := Request{
		Locations:  []weather.Location{{City: "Paris", Country: "FR"}},
		Recipients: []string{"someone@example.com"},
		Timezone:   "UTC",
	}

	if err := svc.Run(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.lastLat != 48.85 || w.lastLon != 2.35 {
		t.Errorf("pollution lookup should use geocoded coordinates, got %f,%f", w.lastLat, w.lastLon)
	}
}

func TestScheduleCompletes(t *testing.T) {
	svc, _, _, sender := newTestService(t)

	req := Request{
		Locations:  []weather.Location{{City: "Mumbai", Country: "IN"}},
		Recipients: []string{"someone@example.com"},
		Timezone:   "UTC",
	}

	done := svc.Schedule(req)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("background unit failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("background unit did not complete")
	}
	if sender.calls != 1 {
		t.Errorf("expected one send, got %d", sender.calls)
	}
}

func TestPlainTextBodyIncludesNarration(t *testing.T) {
	w := &stubWeather{input: testInput()}
	svc := NewService(w, &stubNarrator{}, &stubSender{}, false)

	res := svc.runLocation(context.Background(), weather.Location{City: "Mumbai", Country: "IN"},
		weather.DefaultPreferences(), time.UTC)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.Contains(res.body, "Weather report for Mumbai, IN:") {
		t.Errorf("plain body missing the formatted report:\n%s", res.body)
	}
	if !strings.Contains(res.body, "AI-generated summary:") {
		t.Errorf("plain body missing the narration:\n%s", res.body)
	}
}

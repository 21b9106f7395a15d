package report

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/i474232898/weather-reporter/internal/mailer"
	"github.com/i474232898/weather-reporter/internal/metrics"
	"github.com/i474232898/weather-reporter/internal/weather"
)

// WeatherClient is the slice of the weather provider the service needs:
// three read-only lookups per location.
type WeatherClient interface {
	Current(ctx context.Context, loc weather.Location) (weather.CurrentConditions, error)
	Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastPoint, error)
	AirPollution(ctx context.Context, lat, lon float64) (weather.AirPollution, error)
}

// Narrator restyles a plain-text report as a persona narration.
type Narrator interface {
	Narrate(ctx context.Context, report string) (string, error)
}

// Request is one report generation order: consumed once, never persisted.
type Request struct {
	Locations   []weather.Location
	Preferences weather.Preferences
	Recipients  []string
	Timezone    string
}

// Service drives the per-location fetch-format-narrate-render pipeline and
// dispatches the accumulated result as one email.
type Service struct {
	weather   WeatherClient
	narrator  Narrator
	sender    mailer.Sender
	htmlEmail bool

	// Geocode resolves coordinates for the pollution lookup when the
	// current-conditions payload carries none. Optional; nil disables the
	// fallback and zero coordinates are passed through.
	Geocode func(loc weather.Location) (lat, lon float64, err error)
}

// NewService creates a Service. htmlEmail selects the rendered body format.
func NewService(w WeatherClient, n Narrator, s mailer.Sender, htmlEmail bool) *Service {
	return &Service{
		weather:   w,
		narrator:  n,
		sender:    s,
		htmlEmail: htmlEmail,
	}
}

// Schedule runs the report generation as a detached background unit of work
// and returns immediately. The returned channel carries the unit's outcome;
// the HTTP handler ignores it, tests consume it. The requester never learns
// how the background run ended.
func (s *Service) Schedule(req Request) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := s.Run(context.Background(), req)
		if err != nil {
			log.Printf("report generation failed: %v", err)
		}
		done <- err
		close(done)
	}()
	return done
}

// locationResult holds the outcome of one location's pipeline run. Failures
// are isolated per location here even though Run currently aborts the whole
// batch on the first one, so partial delivery stays a policy switch.
type locationResult struct {
	loc  weather.Location
	body string
	err  error
}

// Run processes every location sequentially, in request order, then sends the
// concatenated report once. A weather or narration error aborts the batch and
// nothing is sent; a delivery error is logged and swallowed.
func (s *Service) Run(ctx context.Context, req Request) error {
	tz, err := time.LoadLocation(req.Timezone)
	if err != nil {
		metrics.ReportsFailed.Inc()
		return fmt.Errorf("load timezone %q: %w", req.Timezone, err)
	}

	var body strings.Builder
	for _, loc := range req.Locations {
		res := s.runLocation(ctx, loc, req.Preferences, tz)
		if res.err != nil {
			metrics.ReportsFailed.Inc()
			return fmt.Errorf("report for %s: %w", loc.Key(), res.err)
		}
		body.WriteString(res.body)
	}
	metrics.ReportsGenerated.Inc()

	subject := "Weather Report - " + time.Now().In(tz).Format("2006-01-02")
	if err := s.sender.Send(ctx, req.Recipients, subject, body.String(), s.htmlEmail); err != nil {
		// Delivery failure is never surfaced to the requester.
		log.Printf("email dispatch failed: %v", err)
		metrics.EmailsFailed.Inc()
		return nil
	}
	metrics.EmailsSent.Inc()
	return nil
}

func (s *Service) runLocation(ctx context.Context, loc weather.Location, prefs weather.Preferences, tz *time.Location) locationResult {
	res := locationResult{loc: loc}

	current, err := s.weather.Current(ctx, loc)
	if err != nil {
		res.err = err
		return res
	}

	forecast, err := s.weather.Forecast(ctx, loc)
	if err != nil {
		res.err = err
		return res
	}

	lat, lon := current.Coord.Lat, current.Coord.Lon
	if lat == 0 && lon == 0 && s.Geocode != nil {
		lat, lon, err = s.Geocode(loc)
		if err != nil {
			res.err = fmt.Errorf("geocode fallback: %w", err)
			return res
		}
	}

	pollution, err := s.weather.AirPollution(ctx, lat, lon)
	if err != nil {
		res.err = err
		return res
	}

	in := Input{
		Location:  loc,
		Current:   current,
		Forecast:  forecast,
		Pollution: pollution,
	}

	text, err := FormatText(in, prefs, tz)
	if err != nil {
		res.err = err
		return res
	}

	narrated, err := s.narrator.Narrate(ctx, text)
	if err != nil {
		res.err = err
		return res
	}

	if s.htmlEmail {
		html, err := RenderHTML(in, narrated, tz)
		if err != nil {
			res.err = err
			return res
		}
		res.body = html
	} else {
		res.body = text + "\n" + narrated + "\n"
	}
	return res
}

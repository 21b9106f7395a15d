package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-reporter/internal/report"
)

// Scheduler drives the optional daily report for a fixed set of locations
// and recipients configured at startup.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *report.Service
	request   report.Request
	at        string
}

// New creates a Scheduler firing daily at the given "HH:MM" local time in tz.
func New(service *report.Service, request report.Request, at string, tz *time.Location) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(tz),
		service:   service,
		request:   request,
		at:        at,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
// A scheduler without recipients or locations is a no-op.
func (s *Scheduler) Start() error {
	if len(s.request.Recipients) == 0 || len(s.request.Locations) == 0 {
		log.Println("scheduler: no daily report configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		log.Printf("scheduler: running daily weather report for %d location(s)", len(s.request.Locations))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.service.Run(ctx, s.request); err != nil {
			log.Printf("scheduler: daily report failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: daily report scheduled at %s for %d recipient(s)", s.at, len(s.request.Recipients))
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

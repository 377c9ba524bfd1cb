package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/clima/internal/weather"
	"github.com/i474232898/clima/internal/weather/openweather"
)

const defaultInterval = 15 * time.Minute

// Fetcher starts a fire-and-forget fetch.
type Fetcher interface {
	Fetch(q weather.Query) *openweather.Attempt
}

// Scheduler periodically triggers fetches for configured queries. Results go
// to the fetcher's observer; the scheduler never waits for them.
type Scheduler struct {
	scheduler *gocron.Scheduler
	fetcher   Fetcher
	queries   []weather.Query
	interval  time.Duration
}

// New creates a new Scheduler.
func New(queries []weather.Query, interval time.Duration, fetcher Fetcher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		fetcher:   fetcher,
		queries:   queries,
		interval:  interval,
	}
}

// Start schedules the periodic job, runs it once immediately and starts the
// underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.queries) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval < time.Second {
		log.Printf("INFO: scheduler: interval %s is below 1s; using %s", s.interval, defaultInterval)
		interval = defaultInterval
	}

	_, err := s.scheduler.Every(interval).Do(func() { s.tick() })
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// tick starts one fetch per query and returns the attempts.
func (s *Scheduler) tick() []*openweather.Attempt {
	log.Printf("scheduler: triggering %d weather fetches", len(s.queries))

	attempts := make([]*openweather.Attempt, 0, len(s.queries))
	for _, q := range s.queries {
		a := s.fetcher.Fetch(q)
		log.Printf("DEBUG: scheduler: fetch %s started for %q", a.ID(), q)
		attempts = append(attempts, a)
	}
	return attempts
}

// Stop stops the scheduler and cancels any future jobs. Fetches already in
// flight still complete and notify.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

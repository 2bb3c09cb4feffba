package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/climatrack/climatrack/internal/config"
	"github.com/climatrack/climatrack/internal/ingest"
)

// BatchRunner is the batch entry point of the ingestion orchestrator.
type BatchRunner interface {
	IngestBatch(ctx context.Context, cities []string) ingest.BatchReport
}

// Scheduler fires batch ingestion for the configured roster on a fixed
// wall-clock cadence.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    BatchRunner
	cfg       *config.AppConfig

	// guard skips a firing that overlaps a still-running one.
	guard sync.Mutex
}

// New creates a Scheduler over the batch runner.
func New(cfg *config.AppConfig, runner BatchRunner) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		runner:    runner,
		cfg:       cfg,
	}
}

// Start schedules the batch job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cfg.Roster) == 0 {
		log.Println("scheduler: empty roster; nothing to schedule")
		return nil
	}

	if _, err := s.scheduler.Cron(s.cfg.ScheduleCron).Do(s.runBatch); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// runBatch is one scheduled firing. The credential is checked once,
// before any city is processed; without it the whole run is skipped.
func (s *Scheduler) runBatch() {
	if !s.guard.TryLock() {
		log.Println("scheduler: previous batch still running; skipping this firing")
		return
	}
	defer s.guard.Unlock()

	if s.cfg.APIKey == "" {
		log.Println("scheduler: skipping batch: missing OPENWEATHER_API_KEY")
		return
	}

	log.Printf("scheduler: running batch ingestion for %d cities", len(s.cfg.Roster))

	report := s.runner.IngestBatch(context.Background(), s.cfg.Roster)

	log.Printf("scheduler: batch completed: %d succeeded, %d failed",
		report.Succeeded(), report.Failed())
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tiendascan/pkg/alerts"
	"tiendascan/pkg/config"
	"tiendascan/pkg/logger"
	"tiendascan/pkg/store"
)

// Job statuses
const (
	JobStatusScheduled = "scheduled"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Error variables
var (
	ErrJobNotFound = fmt.Errorf("job not found")
)

// StockScanner provides the low-stock query the sweep job runs on.
type StockScanner interface {
	LowStock(ctx context.Context, threshold int) ([]store.LowStockEntry, error)
}

// Publisher delivers alert messages to connected clients.
type Publisher interface {
	PublishAlert(ctx context.Context, message string)
}

// StockScheduler runs periodic low-stock sweeps using cron
type StockScheduler struct {
	cron      *cron.Cron
	cfg       *config.Config
	ctx       context.Context
	scanner   StockScanner
	publisher Publisher
	jobs      map[string]*ScheduledJob
	jobsMutex sync.RWMutex
}

// ScheduledJob represents a scheduled job
type ScheduledJob struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Cron    string    `json:"cron"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
	Status  string    `json:"status"`
	EntryID cron.EntryID
	run     func(ctx context.Context) error
}

// NewStockScheduler creates a new stock scheduler
func NewStockScheduler(ctx context.Context, cfg *config.Config, scanner StockScanner, publisher Publisher) (*StockScheduler, error) {
	logger.Info("Initializing stock scheduler")

	cronScheduler := cron.New(
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	s := &StockScheduler{
		cron:      cronScheduler,
		cfg:       cfg,
		ctx:       ctx,
		scanner:   scanner,
		publisher: publisher,
		jobs:      make(map[string]*ScheduledJob),
	}

	if err := s.loadConfiguredJobs(); err != nil {
		return nil, fmt.Errorf("failed to load configured jobs: %w", err)
	}

	logger.Info("Stock scheduler initialized", zap.Int("job_count", len(s.jobs)))
	return s, nil
}

// Start starts the scheduler and blocks until the context is cancelled
func (s *StockScheduler) Start() error {
	logger.Info("Starting stock scheduler")

	s.cron.Start()

	s.jobsMutex.Lock()
	for _, job := range s.jobs {
		if err := s.updateJobNextRunTime(job); err != nil {
			logger.Warn("Failed to update next run time after start",
				zap.String("job_name", job.Name),
				zap.Error(err))
		}
	}
	s.jobsMutex.Unlock()

	s.logScheduledJobs()

	<-s.ctx.Done()
	logger.Info("Stock scheduler context cancelled")

	return nil
}

// Shutdown gracefully shuts down the scheduler
func (s *StockScheduler) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down stock scheduler")

	cronCtx := s.cron.Stop()

	select {
	case <-cronCtx.Done():
		logger.Info("All scheduled jobs completed")
	case <-ctx.Done():
		logger.Warn("Scheduler shutdown timeout, some jobs may still be running")
	}

	return nil
}

// AddJob adds a new scheduled job
func (s *StockScheduler) AddJob(job *ScheduledJob) error {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()

	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	jobFunc := s.createJobFunction(job)

	entryID, err := s.cron.AddFunc(job.Cron, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	job.EntryID = entryID
	job.Status = JobStatusScheduled

	if err := s.updateJobNextRunTime(job); err != nil {
		logger.Warn("Failed to update next run time", zap.String("job_name", job.Name), zap.Error(err))
	}

	s.jobs[job.ID] = job

	logger.Info("Added scheduled job",
		zap.String("job_id", job.ID),
		zap.String("job_name", job.Name),
		zap.String("cron", job.Cron),
		zap.Time("next_run", job.NextRun),
	)

	return nil
}

// RemoveJob removes a scheduled job
func (s *StockScheduler) RemoveJob(jobID string) error {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()

	job, exists := s.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	s.cron.Remove(job.EntryID)
	delete(s.jobs, jobID)

	logger.Info("Removed scheduled job", zap.String("job_id", jobID), zap.String("job_name", job.Name))
	return nil
}

// GetJobs returns snapshots of all scheduled jobs. Refreshing NextRun
// mutates the tracked jobs, so this takes the write lock and hands out
// copies callers cannot race on.
func (s *StockScheduler) GetJobs() []*ScheduledJob {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()

	jobs := make([]*ScheduledJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		s.updateJobNextRunTime(job)
		snapshot := *job
		jobs = append(jobs, &snapshot)
	}

	return jobs
}

// GetStatus returns scheduler status
func (s *StockScheduler) GetStatus() map[string]interface{} {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	return map[string]interface{}{
		"running":   s.cron != nil,
		"job_count": len(s.jobs),
		"entries":   len(s.cron.Entries()),
		"timestamp": time.Now().UTC(),
	}
}

// loadConfiguredJobs registers the jobs declared by the configuration
func (s *StockScheduler) loadConfiguredJobs() error {
	schedCfg := s.cfg.GetSchedulerConfig()
	if !schedCfg.Enabled {
		logger.Info("Scheduler disabled in configuration, no jobs registered")
		return nil
	}

	job := &ScheduledJob{
		Name: "low_stock_sweep",
		Cron: schedCfg.Cron,
		run: func(ctx context.Context) error {
			return s.runLowStockSweep(ctx, schedCfg.LowStockThreshold)
		},
	}

	if err := s.AddJob(job); err != nil {
		return err
	}

	return nil
}

// runLowStockSweep scans stock levels and publishes one alert per depleted row
func (s *StockScheduler) runLowStockSweep(ctx context.Context, threshold int) error {
	entries, err := s.scanner.LowStock(ctx, threshold)
	if err != nil {
		return fmt.Errorf("low stock scan failed: %w", err)
	}

	for _, entry := range entries {
		message := fmt.Sprintf("¡El producto %s en la sucursal %s tiene stock 0!",
			entry.ProductName, entry.BranchName)
		if entry.Quantity > 0 {
			message = fmt.Sprintf("¡El producto %s en la sucursal %s tiene stock bajo (%d)!",
				entry.ProductName, entry.BranchName, entry.Quantity)
		}
		s.publisher.PublishAlert(ctx, message)
	}

	logger.FromContext(ctx).Info("Low stock sweep completed",
		zap.Int("threshold", threshold),
		zap.Int("alerts_published", len(entries)),
	)
	return nil
}

// createJobFunction creates a function to execute for a scheduled job
func (s *StockScheduler) createJobFunction(job *ScheduledJob) func() {
	return func() {
		logger.Info("Executing scheduled job", zap.String("job_id", job.ID), zap.String("job_name", job.Name))

		s.updateJobStatus(job, JobStatusRunning)
		s.updateJobLastRun(job, time.Now())

		jobCtx := logger.WithLogger(s.ctx,
			logger.FromContext(s.ctx).With(zap.String("job_name", job.Name)))

		start := time.Now()
		if err := job.run(jobCtx); err != nil {
			logger.Error("Scheduled job failed", zap.String("job_name", job.Name), zap.Error(err))
			s.updateJobStatus(job, JobStatusFailed)
			return
		}

		logger.Info("Scheduled job completed successfully",
			zap.String("job_name", job.Name),
			zap.Duration("duration", time.Since(start)),
		)
		s.updateJobStatus(job, JobStatusCompleted)
	}
}

// logScheduledJobs logs information about all scheduled jobs
func (s *StockScheduler) logScheduledJobs() {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()

	if len(s.jobs) == 0 {
		logger.Info("No scheduled jobs configured")
		return
	}

	logger.Info("Active scheduled jobs:")
	for _, job := range s.jobs {
		logger.Info("Scheduled job",
			zap.String("job_name", job.Name),
			zap.String("cron", job.Cron),
			zap.Time("next_run", job.NextRun),
			zap.String("status", job.Status),
		)
	}
}

// updateJobNextRunTime updates the next run time for a job
func (s *StockScheduler) updateJobNextRunTime(job *ScheduledJob) error {
	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == job.EntryID {
			job.NextRun = entry.Next
			return nil
		}
	}

	if schedule, err := cron.ParseStandard(job.Cron); err == nil {
		job.NextRun = schedule.Next(time.Now())
		return nil
	} else {
		return fmt.Errorf("failed to parse cron expression %s: %w", job.Cron, err)
	}
}

func (s *StockScheduler) updateJobStatus(job *ScheduledJob, status string) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	job.Status = status
}

func (s *StockScheduler) updateJobLastRun(job *ScheduledJob, lastRun time.Time) {
	s.jobsMutex.Lock()
	defer s.jobsMutex.Unlock()
	job.LastRun = lastRun
}

var _ Publisher = (*alerts.Hub)(nil)

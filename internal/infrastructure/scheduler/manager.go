// Package scheduler runs the nightly membership batch jobs using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// BatchJob processes one batch and returns the number of items changed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int, error) {
	return f(ctx)
}

const jobTimeout = 30 * time.Minute

// SchedulerManager owns the gocron scheduler. Cron expressions are
// evaluated in the business timezone.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterPaymentStatusJob schedules the applicant payment-status recomputation.
func (m *SchedulerManager) RegisterPaymentStatusJob(cronExpr string, job BatchJob) error {
	return m.registerCron("payment-status", cronExpr, job)
}

// RegisterWaitingPeriodJob schedules the daily waiting-period countdown.
func (m *SchedulerManager) RegisterWaitingPeriodJob(cronExpr string, job BatchJob) error {
	return m.registerCron("waiting-period", cronExpr, job)
}

func (m *SchedulerManager) registerCron(name, cronExpr string, job BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			m.run(ctx, name, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("membership", name),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to register %s job: %w", name, err)
	}

	m.logger.Infow("registered scheduled job", "name", name, "cron", cronExpr)
	return nil
}

func (m *SchedulerManager) run(ctx context.Context, name string, job BatchJob) {
	start := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"name", name,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	m.logger.Infow("scheduled job completed",
		"name", name,
		"changed", count,
		"duration", time.Since(start),
	)
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return m.scheduler.Shutdown()
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}

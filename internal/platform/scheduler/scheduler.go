package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/tokenized/pkg/logger"
)

const (
	SubSystem = "Scheduler" // For logger
)

// Scheduler runs jobs when they are ready.
type Scheduler struct {
	jobs     []Job
	interval time.Duration
	lock     sync.Mutex
}

// Job tells the Scheduler when and how to run it.
type Job interface {
	// IsReady returns true when a job should be executed.
	IsReady(ctx context.Context, now time.Time) bool

	// Run executes the job.
	Run(ctx context.Context, now time.Time)

	// IsComplete returns true when a job should be removed from the scheduler.
	IsComplete(ctx context.Context) bool

	// Name identifies the job in the log.
	Name() string
}

// New returns a scheduler that checks its jobs every interval.
func New(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
	}
}

// ScheduleJob adds a job to the scheduler.
func (sch *Scheduler) ScheduleJob(job Job) {
	sch.lock.Lock()
	defer sch.lock.Unlock()

	sch.jobs = append(sch.jobs, job)
}

// Count returns the number of scheduled jobs.
func (sch *Scheduler) Count() int {
	sch.lock.Lock()
	defer sch.lock.Unlock()

	return len(sch.jobs)
}

// Run checks the jobs every interval until ctx is done.
func (sch *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(sch.interval)
	defer ticker.Stop()

	logger.Verbose(ctx, "Scheduler running every %s", sch.interval)

	for {
		select {
		case now := <-ticker.C:
			sch.check(ctx, now)
		case <-ctx.Done():
			logger.Verbose(ctx, "Scheduler stopped")
			return
		}
	}
}

// check runs the ready jobs and removes the complete ones.
func (sch *Scheduler) check(ctx context.Context, now time.Time) {
	sch.lock.Lock()
	defer sch.lock.Unlock()

	remaining := sch.jobs[:0]
	for _, job := range sch.jobs {
		if job.IsReady(ctx, now) {
			logger.Verbose(ctx, "Running job %s", job.Name())
			job.Run(ctx, now)
		}

		if !job.IsComplete(ctx) {
			remaining = append(remaining, job)
		}
	}
	sch.jobs = remaining
}

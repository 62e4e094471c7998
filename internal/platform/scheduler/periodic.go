package scheduler

import (
	"context"
	"time"
)

// PeriodicProcess is a Scheduler job that calls a function at a fixed
// frequency. It never completes.
type PeriodicProcess struct {
	name      string
	process   func(ctx context.Context)
	frequency time.Duration
	next      time.Time
}

func NewPeriodicProcess(name string, process func(ctx context.Context),
	frequency time.Duration) *PeriodicProcess {

	return &PeriodicProcess{
		name:      name,
		process:   process,
		frequency: frequency,
		next:      time.Now().Add(frequency),
	}
}

// IsReady returns true when a job should be executed.
func (pp *PeriodicProcess) IsReady(ctx context.Context, now time.Time) bool {
	return !now.Before(pp.next)
}

// Run executes the job and schedules the next run.
func (pp *PeriodicProcess) Run(ctx context.Context, now time.Time) {
	pp.next = now.Add(pp.frequency)
	pp.process(ctx)
}

func (pp *PeriodicProcess) IsComplete(ctx context.Context) bool {
	return false
}

func (pp *PeriodicProcess) Name() string {
	return pp.name
}

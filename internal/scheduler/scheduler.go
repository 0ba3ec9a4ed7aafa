// Package scheduler enqueues recurring maintenance tasks on cron schedules:
// search key rebuilds and audit trail cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRun returns when schedule fires next after from.
func NextRun(schedule string, from time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// Queue accepts tasks for background execution.
type Queue interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
}

// Job enqueues Task every time Schedule fires.
type Job struct {
	Name     string
	Schedule string
	Task     backlite.Task
}

type Scheduler struct {
	queue Queue
	jobs  []Job

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// New creates a scheduler. Jobs with an empty schedule are skipped.
func New(queue Queue, jobs ...Job) *Scheduler {
	return &Scheduler{
		queue: queue,
		jobs:  jobs,
		cron:  cron.New(cron.WithParser(parser)),
	}
}

// Start registers the jobs and starts the cron loop. It stops when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	scheduled := 0
	for _, job := range s.jobs {
		if job.Schedule == "" {
			log.Printf("Scheduler: %s disabled", job.Name)
			continue
		}
		if err := ValidateSchedule(job.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.Schedule, job.Name, err)
		}

		job := job
		if _, err := s.cron.AddFunc(job.Schedule, func() { s.run(job) }); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
		}

		next, _ := NextRun(job.Schedule, time.Now())
		log.Printf("Scheduler: %s scheduled '%s'. Next run: %v", job.Name, job.Schedule, next)
		scheduled++
	}

	if scheduled == 0 {
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for running jobs and stops the cron loop.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Scheduler: stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Scheduler) run(job Job) {
	if _, err := s.enqueue(job); err != nil {
		log.Printf("Scheduler: %s: %v", job.Name, err)
	}
}

func (s *Scheduler) enqueue(job Job) (string, error) {
	ids, err := s.queue.Enqueue(job.Task)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", job.Name, err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("enqueue %s: no task id returned", job.Name)
	}
	log.Printf("Scheduler: %s enqueued as task %s", job.Name, ids[0])
	return ids[0], nil
}

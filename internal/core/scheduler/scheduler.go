package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

// Job is a unit of scheduled maintenance work
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron expressions with a seconds field
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID // job name -> entry_id
	jobsMux sync.RWMutex
	timeout time.Duration
}

// NewScheduler creates a scheduler. Each run gets a context bounded by timeout.
func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		jobs:    make(map[string]cron.EntryID),
		timeout: timeout,
	}
}

func (s *Scheduler) Start() {
	log.Println("⏰ Starting scheduler...")
	s.cron.Start()
	log.Println("✅ Scheduler started")
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	log.Println("⏰ Stopping scheduler...")
	select {
	case <-s.cron.Stop().Done():
		log.Println("✅ Scheduler stopped")
	case <-ctx.Done():
		log.Println("⚠️ Scheduler stop timed out with jobs still running")
	}
}

// AddJob schedules job under name, replacing any job already registered with it.
// schedule is a six-field cron expression (e.g. "0 5 0 * * *" for 00:05 daily).
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	entryID, err := s.cron.AddFunc(schedule, s.wrap(name, job))
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}

	if existing, exists := s.jobs[name]; exists {
		s.cron.Remove(existing)
	}
	s.jobs[name] = entryID
	log.Printf("   ✅ Scheduled job %s: %s", name, schedule)

	return nil
}

func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		started := time.Now()
		if err := job(ctx); err != nil {
			utils.LogError("Scheduled job failed", err, map[string]interface{}{"job": name})
			return
		}
		utils.LogInfo("Scheduled job finished", map[string]interface{}{
			"job":      name,
			"duration": time.Since(started).String(),
		})
	}
}

func (s *Scheduler) RemoveJob(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		log.Printf("   ✅ Removed scheduled job: %s", name)
	}
}

// Jobs returns the registered job names, sorted
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the next activation of name. ok is false for unknown jobs or
// before Start.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.jobsMux.RLock()
	entryID, exists := s.jobs[name]
	s.jobsMux.RUnlock()
	if !exists {
		return time.Time{}, false
	}

	next := s.cron.Entry(entryID).Next
	return next, !next.IsZero()
}

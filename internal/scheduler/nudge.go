// Package scheduler drives the periodic inspiration nudge: a low-frequency,
// best-effort hint that prompts connected displays to re-poll for content.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/suilan/musedeck/internal/syncbus"
)

// rollSides is the dice for the probabilistic trigger: the nudge fires on
// one face only, so roughly one invocation in three publishes.
const (
	rollSides  = 3
	firingRoll = 2
)

// NudgeScheduler periodically rolls for an inspiration nudge and publishes
// it over the sync bus when the roll fires.
type NudgeScheduler struct {
	bus      syncbus.Notifier
	schedule string

	cron    *cron.Cron
	entryID cron.EntryID

	// roll returns a value in [1, rollSides]; injectable for tests.
	roll func() int

	mu        sync.Mutex
	isRunning bool
}

// NewNudgeScheduler creates a scheduler publishing on the given cron
// schedule (standard five-field format).
func NewNudgeScheduler(bus syncbus.Notifier, schedule string) *NudgeScheduler {
	return &NudgeScheduler{
		bus:      bus,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		roll:     func() int { return rand.Intn(rollSides) + 1 },
	}
}

// Start begins the periodic trigger.
func (s *NudgeScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		fired, roll, err := s.Trigger(context.Background())
		if err != nil {
			// Best effort: a lost nudge only delays the next re-poll.
			log.Printf("Inspiration nudge publish failed: %v", err)
			return
		}
		if fired {
			log.Printf("Inspiration nudge published (roll=%d)", roll)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule nudge job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Nudge scheduler started (schedule %q)", s.schedule)
	return nil
}

// Stop halts the periodic trigger, waiting for a running job to finish.
func (s *NudgeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Nudge scheduler stopped")
}

// Trigger rolls once and publishes the nudge if the roll fires. Returns
// whether it fired, the roll value, and any transport error from the
// publish. Shared by the cron job and the manual trigger endpoint.
func (s *NudgeScheduler) Trigger(ctx context.Context) (bool, int, error) {
	roll := s.roll()
	if roll != firingRoll {
		return false, roll, nil
	}
	if err := s.bus.PublishInspirationNudge(ctx, roll); err != nil {
		return false, roll, err
	}
	return true, roll, nil
}

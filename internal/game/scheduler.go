package game

import (
	"context"
	"sync"
	"time"
)

// Scheduler holds the queue of delayed transitions that pace computer
// turns. The API server consumes it with real timers via Run; tests and
// the headless sim drain it synchronously, ignoring delays, so a full
// computer turn executes without wall-clock waits.
type Scheduler struct {
	mu    sync.Mutex
	steps []scheduledStep
	wake  chan struct{}
}

type scheduledStep struct {
	delay time.Duration
	run   func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{wake: make(chan struct{}, 1)}
}

// Push appends a step. Order of execution is strictly FIFO.
func (s *Scheduler) Push(delay time.Duration, run func()) {
	s.mu.Lock()
	s.steps = append(s.steps, scheduledStep{delay: delay, run: run})
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Len reports how many steps are queued.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

func (s *Scheduler) pop() (scheduledStep, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.steps) == 0 {
		return scheduledStep{}, false
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	return step, true
}

// Step runs the next queued step immediately, ignoring its delay.
func (s *Scheduler) Step() bool {
	step, ok := s.pop()
	if !ok {
		return false
	}
	step.run()
	return true
}

// Drain runs queued steps, including ones they push, until the queue is
// empty or maxSteps have run. It returns the number executed.
func (s *Scheduler) Drain(maxSteps int) int {
	ran := 0
	for ran < maxSteps && s.Step() {
		ran++
	}
	return ran
}

// Run consumes the queue with real delays until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		step, ok := s.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-s.wake:
				continue
			}
		}
		if step.delay > 0 {
			t := time.NewTimer(step.delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		step.run()
	}
}

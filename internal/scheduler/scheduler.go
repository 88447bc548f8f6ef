// Package scheduler implements the companion's background task scheduler
// (spec component C9): fire-and-forget execution with a bounded concurrency
// cap, per-task timeout, panic/error isolation, and a graceful shutdown
// drain window. Grounded on the teacher's main.go shutdown sequence
// (signal.NotifyContext + GatewayManager.StopAll with a bounded drain
// sleep) and on golang.org/x/sync/semaphore, the pack's idiom for bounded
// concurrency (used by MrWong99-glyphoxa and intelligencedev-manifold).
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"companion/internal/companionerrors"
)

// Scheduler runs fire-and-forget background tasks with bounded concurrency.
// It never propagates a task's error to the caller of Schedule — scheduling
// fails only when the concurrency cap is reached (ErrSchedulerFull) or the
// scheduler has begun shutting down.
type Scheduler struct {
	sem          *semaphore.Weighted
	taskTimeout  time.Duration
	drainTimeout time.Duration

	wg       sync.WaitGroup
	mu       sync.Mutex
	draining bool
}

// New builds a Scheduler with the given concurrency cap, per-task timeout,
// and shutdown drain window.
func New(maxConcurrent int, taskTimeout, drainTimeout time.Duration) *Scheduler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Scheduler{
		sem:          semaphore.NewWeighted(int64(maxConcurrent)),
		taskTimeout:  taskTimeout,
		drainTimeout: drainTimeout,
	}
}

// Schedule admits fn for background execution and returns immediately.
// fn receives a context bound by the scheduler's per-task timeout only: it
// is detached from ctx's cancellation, and Drain does not cancel it, so a
// task still running when the drain window elapses keeps running until its
// own timeout. A panic inside fn is recovered and logged, never crashing
// the caller. Returns companionerrors.ErrSchedulerFull if the concurrency
// cap is currently saturated or Drain has been called — callers (the
// ingress and visionask handlers) treat that as fail-open: the synchronous
// reply to the user is unaffected.
func (s *Scheduler) Schedule(ctx context.Context, label string, fn func(context.Context) error) error {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return companionerrors.ErrSchedulerFull
	}
	s.mu.Unlock()

	if !s.sem.TryAcquire(1) {
		slog.Warn("scheduler at capacity, dropping background task", "task", label)
		return companionerrors.ErrSchedulerFull
	}

	s.wg.Add(1)
	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.taskTimeout)

	go func() {
		defer s.wg.Done()
		defer cancel()
		defer s.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("background task panicked", "task", label, "panic", r)
			}
		}()

		start := time.Now()
		if err := fn(taskCtx); err != nil {
			slog.Error("background task failed", "task", label, "error", err, "duration", time.Since(start).String())
			return
		}
		slog.Info("background task completed", "task", label, "duration", time.Since(start).String())
	}()

	return nil
}

// Drain blocks until all in-flight tasks complete or the scheduler's drain
// timeout elapses, whichever comes first. After Drain is called, no further
// tasks are admitted. Intended to be called once, from the process's
// shutdown sequence.
func (s *Scheduler) Drain() {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("scheduler drained cleanly")
	case <-time.After(s.drainTimeout):
		slog.Warn("scheduler drain window elapsed, abandoning remaining tasks")
	}
}

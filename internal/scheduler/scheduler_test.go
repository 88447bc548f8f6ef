package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companion/internal/companionerrors"
)

func TestSchedule_RunsTaskAsynchronously(t *testing.T) {
	s := New(4, time.Second, time.Second)
	var ran atomic.Bool

	err := s.Schedule(context.Background(), "test", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)

	s.Drain()
	assert.True(t, ran.Load())
}

func TestSchedule_RejectsBeyondConcurrencyCap(t *testing.T) {
	s := New(1, 5*time.Second, 2*time.Second)
	block := make(chan struct{})

	err := s.Schedule(context.Background(), "first", func(ctx context.Context) error {
		<-block
		return nil
	})
	require.NoError(t, err)

	err = s.Schedule(context.Background(), "second", func(ctx context.Context) error {
		return nil
	})
	require.ErrorIs(t, err, companionerrors.ErrSchedulerFull)

	close(block)
	s.Drain()
}

func TestSchedule_IsolatesPanicsAndErrors(t *testing.T) {
	s := New(4, time.Second, time.Second)

	err := s.Schedule(context.Background(), "panics", func(ctx context.Context) error {
		panic("boom")
	})
	require.NoError(t, err)

	err = s.Schedule(context.Background(), "errors", func(ctx context.Context) error {
		return errors.New("task failed")
	})
	require.NoError(t, err)

	// Neither task's failure propagates to Schedule's caller.
	s.Drain()
}

func TestSchedule_TaskReceivesTimeoutBoundContext(t *testing.T) {
	s := New(4, 30*time.Millisecond, time.Second)
	done := make(chan error, 1)

	err := s.Schedule(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})
	require.NoError(t, err)

	select {
	case e := <-done:
		assert.ErrorIs(t, e, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("task did not observe its timeout")
	}
}

func TestDrain_RejectsNewTasksAfterDraining(t *testing.T) {
	s := New(4, time.Second, 200*time.Millisecond)
	s.Drain()

	err := s.Schedule(context.Background(), "late", func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, companionerrors.ErrSchedulerFull)
}

package schedule_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newsradar/internal/logger"
	"github.com/jonesrussell/newsradar/internal/schedule"
)

func TestNew_RejectsUnknownTimezone(t *testing.T) {
	t.Parallel()

	_, err := schedule.New(schedule.Params{
		Spec:     "7 0 * * *",
		Timezone: "Asia/Nowhere",
		Sweep:    func(context.Context) error { return nil },
		Logger:   logger.NewNoop(),
	})
	require.Error(t, err)
}

func TestStart_RejectsInvalidSpec(t *testing.T) {
	t.Parallel()

	s, err := schedule.New(schedule.Params{
		Spec:     "not a cron spec",
		Timezone: "Asia/Seoul",
		Sweep:    func(context.Context) error { return nil },
		Logger:   logger.NewNoop(),
	})
	require.NoError(t, err)
	require.Error(t, s.Start(context.Background()))
}

func TestRunOnce_RunsSweep(t *testing.T) {
	t.Parallel()

	calls := 0
	s, err := schedule.New(schedule.Params{
		Spec:     "7 0 * * *",
		Timezone: "Asia/Seoul",
		Sweep: func(context.Context) error {
			calls++
			return nil
		},
		Logger: logger.NewNoop(),
	})
	require.NoError(t, err)

	require.NoError(t, s.RunOnce(context.Background()))
	require.Equal(t, 1, calls)
}

func TestRunOnce_PropagatesSweepFailure(t *testing.T) {
	t.Parallel()

	sweepErr := errors.New("search request failed")
	s, err := schedule.New(schedule.Params{
		Spec:     "7 0 * * *",
		Timezone: "Asia/Seoul",
		Sweep:    func(context.Context) error { return sweepErr },
		Logger:   logger.NewNoop(),
	})
	require.NoError(t, err)

	require.ErrorIs(t, s.RunOnce(context.Background()), sweepErr)
}

func TestRunOnce_SkipsOverlappingTrigger(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	s, err := schedule.New(schedule.Params{
		Spec:     "7 0 * * *",
		Timezone: "Asia/Seoul",
		Sweep: func(context.Context) error {
			close(started)
			<-release
			return nil
		},
		Logger: logger.NewNoop(),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, s.RunOnce(context.Background()))
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first sweep never started")
	}

	require.ErrorIs(t, s.RunOnce(context.Background()), schedule.ErrSweepInProgress)

	close(release)
	wg.Wait()
}

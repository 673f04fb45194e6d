// Package schedule runs the daily keyword sweep on a cron trigger.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/newsradar/internal/logger"
)

// ErrSweepInProgress is reported when a trigger fires while the previous
// sweep is still running.
var ErrSweepInProgress = errors.New("sweep already in progress")

// SweepFunc runs one full keyword sweep.
type SweepFunc func(ctx context.Context) error

// Params contains the scheduler's collaborators and settings.
type Params struct {
	// Spec is a standard five-field cron expression.
	Spec string
	// Timezone names the IANA location the spec is evaluated in.
	Timezone string
	// ImportCommand, when non-empty, is run after each completed sweep
	// (argv form). Its exit status is logged, never propagated.
	ImportCommand []string
	Sweep         SweepFunc
	Logger        logger.Interface
}

// Scheduler fires the sweep at the configured local time. Overlapping
// triggers are skipped: at most one sweep runs at a time.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	importCmd []string
	sweep     SweepFunc
	log       logger.Interface
	mu        sync.Mutex
}

// New creates a scheduler. The cron expression is validated at Start.
func New(p Params) (*Scheduler, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", p.Timezone, err)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLogger{log: p.Logger})),
	)

	return &Scheduler{
		cron:      c,
		spec:      p.Spec,
		importCmd: p.ImportCommand,
		sweep:     p.Sweep,
		log:       p.Logger,
	}, nil
}

// Start registers the cron entry and begins the trigger loop. The given
// context is the lifecycle context of every triggered sweep.
func (s *Scheduler) Start(ctx context.Context) error {
	entryID, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			if errors.Is(err, ErrSweepInProgress) {
				s.log.Warn("trigger skipped, previous sweep still running", "spec", s.spec)
				return
			}
			s.log.Error("scheduled sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("add cron entry %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		"spec", s.spec,
		"next_run", s.cron.Entry(entryID).Next.Format(time.RFC3339),
	)
	return nil
}

// Stop halts the trigger loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("scheduler stopped")
}

// RunOnce runs one sweep followed by the downstream import step. It
// returns ErrSweepInProgress without blocking when a sweep is running.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.mu.TryLock() {
		return ErrSweepInProgress
	}
	defer s.mu.Unlock()

	start := time.Now()
	if err := s.sweep(ctx); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	s.log.Info("sweep complete", "duration", time.Since(start).String())

	if len(s.importCmd) > 0 {
		s.runImport(ctx)
	}
	return nil
}

// runImport hands the stored articles off to the configured downstream
// import command and logs its outcome.
func (s *Scheduler) runImport(ctx context.Context) {
	s.log.Info("starting downstream import", "command", s.importCmd[0])

	start := time.Now()
	cmd := exec.CommandContext(ctx, s.importCmd[0], s.importCmd[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		s.log.Error("downstream import failed",
			"command", s.importCmd[0],
			"error", err,
			"output", string(output),
		)
		return
	}

	s.log.Info("downstream import complete",
		"command", s.importCmd[0],
		"duration", time.Since(start).String(),
	)
}

// cronLogger adapts the application logger to the cron recovery chain.
type cronLogger struct {
	log logger.Interface
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Info(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	fields := append([]any{"error", err}, keysAndValues...)
	c.log.Error(msg, fields...)
}

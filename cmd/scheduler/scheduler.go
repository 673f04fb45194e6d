// Package scheduler implements the scheduler command running the daily
// crawl trigger until interrupted.
package scheduler

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/newsradar/cmd/common"
	"github.com/jonesrussell/newsradar/internal/schedule"
)

// Command returns the scheduler command for use in the root command.
func Command() *cobra.Command {
	var runNow bool

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Run the daily crawl schedule until interrupted",
		Long: `Starts the cron loop that runs a full keyword sweep at the configured
local time each day, followed by the downstream import step when one is
configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			if err := deps.Config.ValidateCrawl(); err != nil {
				return err
			}

			storage, err := cmdcommon.NewStorage(deps)
			if err != nil {
				return err
			}
			defer storage.Close()

			runner, err := cmdcommon.NewRunner(deps, storage)
			if err != nil {
				return err
			}

			sched, err := schedule.New(schedule.Params{
				Spec:          deps.Config.Schedule.Spec,
				Timezone:      deps.Config.Schedule.Timezone,
				ImportCommand: deps.Config.Schedule.ImportCommand,
				Sweep: func(ctx context.Context) error {
					_, sweepErr := runner.Run(ctx)
					return sweepErr
				},
				Logger: deps.Logger,
			})
			if err != nil {
				return fmt.Errorf("create scheduler: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if runNow {
				if err := sched.RunOnce(ctx); err != nil {
					deps.Logger.Error("initial sweep failed", "error", err)
				}
			}

			if err := sched.Start(ctx); err != nil {
				return fmt.Errorf("start scheduler: %w", err)
			}

			<-ctx.Done()
			deps.Logger.Info("shutdown signal received")
			sched.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVar(&runNow, "run-now", false, "run one sweep immediately before starting the schedule")

	return cmd
}

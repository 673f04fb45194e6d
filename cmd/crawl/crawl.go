// Package crawl implements the crawl command for running one full
// keyword sweep.
package crawl

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/newsradar/cmd/common"
)

// Command returns the crawl command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Run one full keyword sweep now",
		Long: `Searches news for every configured keyword, extracts and analyzes
each article, and stores the results in the database with JSON backups.`,
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

			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("sweep aborted: %w", err)
			}

			fmt.Printf("saved %d, skipped %d empty, %d duplicate, %d failed\n",
				summary.Saved, summary.SkippedEmpty, summary.SkippedDuplicates, summary.Failed)
			return nil
		},
	}
}

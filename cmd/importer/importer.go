// Package importer implements the import command for bulk-loading
// pre-analyzed records from a JSON file.
package importer

import (
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/newsradar/cmd/common"
	"github.com/jonesrussell/newsradar/internal/pipeline"
)

// Command returns the import command for use in the root command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Bulk import a JSON array of analyzed articles",
		Long: `Reads a JSON array of merged article + analysis records and stores each
one in the database. Records whose URL is already stored are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			storage, err := cmdcommon.NewStorage(deps)
			if err != nil {
				return err
			}
			defer storage.Close()

			imp := pipeline.NewImporter(storage.Companies, storage.News, deps.Logger)

			summary, err := imp.Import(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("import aborted: %w", err)
			}

			fmt.Printf("imported %d, skipped %d, failed %d\n",
				summary.Imported, summary.Skipped, summary.Failed)
			return nil
		},
	}
}

// Package single implements the single command for processing one
// article URL without touching the database.
package single

import (
	"fmt"
	"net/url"
	"path"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/newsradar/cmd/common"
	"github.com/jonesrussell/newsradar/internal/backup"
	"github.com/jonesrussell/newsradar/internal/domain"
)

// Command returns the single command for use in the root command.
func Command() *cobra.Command {
	var name string
	var stockCode string

	cmd := &cobra.Command{
		Use:   "single [url]",
		Short: "Fetch and analyze one article, write the result to a JSON file",
		Long: `Fetches one article URL, extracts and analyzes it, and writes the merged
article + analysis record to the backup directory. Nothing is stored in
the database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := cmdcommon.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			analyzer, err := cmdcommon.NewAnalyzer(deps)
			if err != nil {
				return err
			}

			pageURL := args[0]
			article, err := cmdcommon.NewFetcher(deps).Fetch(cmd.Context(), pageURL, stockCode)
			if err != nil {
				return fmt.Errorf("fetch article: %w", err)
			}

			if !article.HasBody() {
				return fmt.Errorf("article %s has no usable title or content", pageURL)
			}

			analysis, err := analyzer.Analyze(cmd.Context(), article)
			if err != nil {
				return fmt.Errorf("analyze article: %w", err)
			}

			rec := &domain.Record{
				Article:  *article,
				Summary:  analysis.Summary,
				Analysis: analysis,
			}

			if name == "" {
				name = fileNameFromURL(pageURL)
			}

			store := backup.NewStore(deps.Config.Backup.Dir)
			outPath, err := store.WriteNamed(name, rec)
			if err != nil {
				return fmt.Errorf("write result: %w", err)
			}

			deps.Logger.Info("article processed", "url", pageURL, "path", outPath)
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "output file name without extension (default is the article id)")
	cmd.Flags().StringVar(&stockCode, "stock-code", "", "stock code hint attached to the article")

	return cmd
}

// fileNameFromURL derives an output name from the article id in the URL
// path, falling back to "article" when the URL cannot be parsed.
func fileNameFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "article"
	}
	return path.Base(parsed.Path)
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/jonesrussell/newsradar/internal/backup"
	"github.com/jonesrussell/newsradar/internal/domain"
	"github.com/jonesrussell/newsradar/internal/logger"
)

// ImportSummary aggregates per-record outcomes over one bulk import.
type ImportSummary struct {
	Imported int
	Skipped  int
	Failed   int
}

// Importer persists pre-analyzed records from a bulk-import file through
// the same company/news/sentiment operations as the crawl pipeline, without
// crawling or calling the analyzer.
type Importer struct {
	companies CompanyStore
	news      NewsStore
	log       logger.Interface
}

// NewImporter creates a bulk importer.
func NewImporter(companies CompanyStore, news NewsStore, log logger.Interface) *Importer {
	return &Importer{companies: companies, news: news, log: log}
}

// Import reads a JSON array of merged article + analysis records and
// persists each one. Records whose URL is already stored are skipped;
// a failing record never aborts the rest of the file.
func (i *Importer) Import(ctx context.Context, path string) (*ImportSummary, error) {
	records, err := backup.ReadRecords(path)
	if err != nil {
		return nil, err
	}

	i.log.Info("starting bulk import", "path", path, "records", len(records))

	summary := &ImportSummary{}

	for idx := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		rec := &records[idx]

		_, exists, existsErr := i.news.Exists(ctx, rec.ContentURL)
		if existsErr != nil {
			i.log.Error("import dedup check failed", "url", rec.ContentURL, "error", existsErr)
			summary.Failed++
			continue
		}
		if exists {
			i.log.Info("import record skipped", "url", rec.ContentURL, "outcome", string(OutcomeSkippedDuplicate))
			summary.Skipped++
			continue
		}

		newsID, importErr := i.importRecord(ctx, rec)
		if importErr != nil {
			i.log.Error("import record failed", "url", rec.ContentURL, "error", importErr)
			summary.Failed++
			continue
		}

		i.log.Info("import record saved", "url", rec.ContentURL, "news_id", newsID)
		summary.Imported++
	}

	i.log.Info("bulk import complete",
		"imported", summary.Imported,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	return summary, nil
}

// importRecord persists one record. Bulk-import records carry no keyword
// context, so the news row gets no main company.
func (i *Importer) importRecord(ctx context.Context, rec *domain.Record) (int64, error) {
	newsID, err := i.news.Insert(ctx, rec, nil)
	if err != nil {
		return 0, fmt.Errorf("insert news: %w", err)
	}

	if err := i.news.InsertImages(ctx, newsID, rec.ImageURLs); err != nil {
		return newsID, fmt.Errorf("insert images: %w", err)
	}

	for name, cs := range rec.Companies() {
		companyID, err := i.companies.FindOrCreate(ctx, cs)
		if err != nil {
			return newsID, fmt.Errorf("resolve company %q: %w", name, err)
		}
		if err := i.news.InsertSentiment(ctx, newsID, companyID, cs.Sentiment); err != nil {
			return newsID, fmt.Errorf("insert sentiment for %q: %w", name, err)
		}
	}

	return newsID, nil
}

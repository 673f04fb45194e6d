// Package pipeline drives the crawl → extract → analyze → persist loop.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonesrussell/newsradar/internal/domain"
	"github.com/jonesrussell/newsradar/internal/logger"
)

// Searcher returns candidate article URLs for one keyword.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]string, error)
}

// Fetcher retrieves and extracts one article.
type Fetcher interface {
	Fetch(ctx context.Context, url, stockCode string) (*domain.Article, error)
}

// Analyzer produces summary and per-company sentiment for one article.
type Analyzer interface {
	Analyze(ctx context.Context, article *domain.Article) (*domain.AnalysisResult, error)
}

// CompanyStore resolves company payloads to stored company ids.
type CompanyStore interface {
	FindOrCreate(ctx context.Context, cs domain.CompanySentiment) (int64, error)
}

// NewsStore persists news rows with their images and sentiment links.
type NewsStore interface {
	Exists(ctx context.Context, contentURL string) (int64, bool, error)
	Insert(ctx context.Context, rec *domain.Record, mainCompanyID *int64) (int64, error)
	InsertImages(ctx context.Context, newsID int64, urls []string) error
	InsertSentiment(ctx context.Context, newsID, companyID int64, sentiment string) error
}

// BackupWriter stores the JSON snapshot of a persisted record.
type BackupWriter interface {
	Write(newsID int64, rec *domain.Record) (string, error)
}

// Outcome is the terminal per-URL result of one pipeline iteration.
type Outcome string

const (
	// OutcomeSaved means the article was persisted and backed up.
	OutcomeSaved Outcome = "saved"
	// OutcomeSkippedEmpty means title or content was missing.
	OutcomeSkippedEmpty Outcome = "skipped_empty"
	// OutcomeSkippedDuplicate means the URL was already stored.
	OutcomeSkippedDuplicate Outcome = "skipped_duplicate"
	// OutcomeFailed means fetch, analysis, or persistence failed.
	OutcomeFailed Outcome = "failed"
)

// Summary aggregates per-URL outcomes over one run.
type Summary struct {
	Saved             int
	SkippedEmpty      int
	SkippedDuplicates int
	Failed            int
}

// record tallies one outcome.
func (s *Summary) record(outcome Outcome) {
	switch outcome {
	case OutcomeSaved:
		s.Saved++
	case OutcomeSkippedEmpty:
		s.SkippedEmpty++
	case OutcomeSkippedDuplicate:
		s.SkippedDuplicates++
	case OutcomeFailed:
		s.Failed++
	}
}

// RunnerParams contains the collaborators of the pipeline runner.
type RunnerParams struct {
	Searcher  Searcher
	Fetcher   Fetcher
	Analyzer  Analyzer
	Companies CompanyStore
	News      NewsStore
	Backups   BackupWriter
	Keywords  []domain.Keyword
	Logger    logger.Interface
}

// Runner executes the full keyword sweep: keywords and their URLs are
// processed strictly sequentially, one external call in flight at a time.
// A failing URL never aborts its siblings.
type Runner struct {
	searcher  Searcher
	fetcher   Fetcher
	analyzer  Analyzer
	companies CompanyStore
	news      NewsStore
	backups   BackupWriter
	keywords  []domain.Keyword
	log       logger.Interface
}

// NewRunner creates a pipeline runner from its collaborators.
func NewRunner(p RunnerParams) *Runner {
	return &Runner{
		searcher:  p.Searcher,
		fetcher:   p.Fetcher,
		analyzer:  p.Analyzer,
		companies: p.Companies,
		news:      p.News,
		backups:   p.Backups,
		keywords:  p.Keywords,
		log:       p.Logger,
	}
}

// Run sweeps every configured keyword and returns the outcome summary.
// Only context cancellation ends the run early.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	runLog := r.log.With("run_id", uuid.NewString())
	runLog.Info("starting keyword sweep", "keywords", len(r.keywords))

	summary := &Summary{}

	for _, kw := range r.keywords {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		urls, err := r.searcher.Search(ctx, kw.Name)
		if err != nil {
			runLog.Error("search failed", "keyword", kw.Name, "error", err)
			summary.Failed++
			continue
		}

		runLog.Info("keyword searched", "keyword", kw.Name, "urls", len(urls))

		for _, pageURL := range urls {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			outcome, newsID, processErr := r.processURL(ctx, kw, pageURL)
			summary.record(outcome)
			logOutcome(runLog, kw.Name, pageURL, outcome, newsID, processErr)
		}
	}

	runLog.Info("keyword sweep complete",
		"saved", summary.Saved,
		"skipped_empty", summary.SkippedEmpty,
		"skipped_duplicate", summary.SkippedDuplicates,
		"failed", summary.Failed,
	)

	return summary, nil
}

// processURL runs one URL through fetch, validation, dedup, analysis, and
// persistence. Partial writes already committed when a later statement
// fails stay committed; there is no cross-statement transaction.
func (r *Runner) processURL(ctx context.Context, kw domain.Keyword, pageURL string) (Outcome, int64, error) {
	article, err := r.fetcher.Fetch(ctx, pageURL, kw.StockCode)
	if err != nil {
		return OutcomeFailed, 0, fmt.Errorf("fetch: %w", err)
	}

	if !article.HasBody() {
		return OutcomeSkippedEmpty, 0, nil
	}

	existingID, exists, err := r.news.Exists(ctx, article.ContentURL)
	if err != nil {
		return OutcomeFailed, 0, fmt.Errorf("dedup check: %w", err)
	}
	if exists {
		return OutcomeSkippedDuplicate, existingID, nil
	}

	analysis, err := r.analyzer.Analyze(ctx, article)
	if err != nil {
		return OutcomeFailed, 0, fmt.Errorf("analyze: %w", err)
	}

	rec := &domain.Record{
		Article:  *article,
		Summary:  analysis.Summary,
		Analysis: analysis,
	}

	newsID, err := r.persist(ctx, kw, rec)
	if err != nil {
		return OutcomeFailed, newsID, err
	}

	if _, err := r.backups.Write(newsID, rec); err != nil {
		return OutcomeFailed, newsID, fmt.Errorf("write backup: %w", err)
	}

	return OutcomeSaved, newsID, nil
}

// persist writes the news row, its images, and one sentiment link per
// company in the analysis output. The keyword's own company, when present
// in the sentiment map, becomes the main company of the news row.
func (r *Runner) persist(ctx context.Context, kw domain.Keyword, rec *domain.Record) (int64, error) {
	var mainCompanyID *int64
	if cs, ok := rec.Analysis.Companies[kw.Name]; ok {
		id, err := r.companies.FindOrCreate(ctx, cs)
		if err != nil {
			return 0, fmt.Errorf("resolve main company: %w", err)
		}
		mainCompanyID = &id
	}

	newsID, err := r.news.Insert(ctx, rec, mainCompanyID)
	if err != nil {
		return 0, fmt.Errorf("insert news: %w", err)
	}

	if err := r.news.InsertImages(ctx, newsID, rec.ImageURLs); err != nil {
		return newsID, fmt.Errorf("insert images: %w", err)
	}

	for name, cs := range rec.Analysis.Companies {
		companyID, err := r.companies.FindOrCreate(ctx, cs)
		if err != nil {
			return newsID, fmt.Errorf("resolve company %q: %w", name, err)
		}
		if err := r.news.InsertSentiment(ctx, newsID, companyID, cs.Sentiment); err != nil {
			return newsID, fmt.Errorf("insert sentiment for %q: %w", name, err)
		}
	}

	return newsID, nil
}

// logOutcome reports one terminal per-URL outcome as a structured log line.
func logOutcome(log logger.Interface, keyword, pageURL string, outcome Outcome, newsID int64, err error) {
	switch outcome {
	case OutcomeFailed:
		log.Error("article failed", "keyword", keyword, "url", pageURL, "outcome", string(outcome), "error", err)
	case OutcomeSaved:
		log.Info("article saved", "keyword", keyword, "url", pageURL, "outcome", string(outcome), "news_id", newsID)
	case OutcomeSkippedDuplicate:
		log.Info("article skipped", "keyword", keyword, "url", pageURL, "outcome", string(outcome), "news_id", newsID)
	case OutcomeSkippedEmpty:
		log.Info("article skipped", "keyword", keyword, "url", pageURL, "outcome", string(outcome))
	}
}

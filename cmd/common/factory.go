package common

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newsradar/internal/analyze"
	"github.com/jonesrussell/newsradar/internal/backup"
	"github.com/jonesrussell/newsradar/internal/database"
	"github.com/jonesrussell/newsradar/internal/fetch"
	"github.com/jonesrussell/newsradar/internal/pipeline"
	"github.com/jonesrussell/newsradar/internal/search"
)

// Storage bundles the database pool with its repositories.
type Storage struct {
	DB        *sqlx.DB
	Companies *database.CompanyRepository
	News      *database.NewsRepository
}

// Close releases the database pool.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// NewStorage validates the database settings and opens the shared pool.
func NewStorage(deps CommandDeps) (*Storage, error) {
	if err := deps.Config.ValidateStorage(); err != nil {
		return nil, err
	}

	db, err := database.NewPostgresConnection(deps.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &Storage{
		DB:        db,
		Companies: database.NewCompanyRepository(db),
		News:      database.NewNewsRepository(db),
	}, nil
}

// NewFetcher creates the article fetcher from the crawler settings.
func NewFetcher(deps CommandDeps) *fetch.Fetcher {
	return fetch.NewFetcher(fetch.Config{
		UserAgent:      deps.Config.Crawler.UserAgent,
		RequestTimeout: deps.Config.Crawler.RequestTimeout,
	}, deps.Logger)
}

// NewAnalyzer creates the article analyzer from the analyzer settings.
func NewAnalyzer(deps CommandDeps) (*analyze.OpenAIAnalyzer, error) {
	if err := deps.Config.ValidateAnalyzer(); err != nil {
		return nil, err
	}

	return analyze.NewOpenAIAnalyzer(analyze.Config{
		APIKey:  deps.Config.Analyzer.APIKey,
		Model:   deps.Config.Analyzer.Model,
		BaseURL: deps.Config.Analyzer.BaseURL,
	}), nil
}

// NewRunner wires the full sweep pipeline on top of the given storage.
func NewRunner(deps CommandDeps, storage *Storage) (*pipeline.Runner, error) {
	analyzer, err := NewAnalyzer(deps)
	if err != nil {
		return nil, err
	}

	collector := search.NewCollector(search.Config{
		Endpoint:  deps.Config.Search.Endpoint,
		UserAgent: deps.Config.Crawler.UserAgent,
		Limit:     deps.Config.Search.Limit,
	}, deps.Logger)

	return pipeline.NewRunner(pipeline.RunnerParams{
		Searcher:  collector,
		Fetcher:   NewFetcher(deps),
		Analyzer:  analyzer,
		Companies: storage.Companies,
		News:      storage.News,
		Backups:   backup.NewStore(deps.Config.Backup.Dir),
		Keywords:  deps.Config.Keywords,
		Logger:    deps.Logger,
	}), nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newsradar/internal/domain"
)

// NewsRepository handles database operations for news, their images, and
// per-company sentiment links. News rows are insert-only; re-encountering
// the same URL is a skip, never an update.
type NewsRepository struct {
	db *sqlx.DB
}

// NewNewsRepository creates a new news repository.
func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// Exists returns the news id for a content URL when one is already stored.
// This is the primary dedup gate; it runs before any writes for an article.
func (r *NewsRepository) Exists(ctx context.Context, contentURL string) (int64, bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`SELECT news_id FROM news WHERE content_url = $1 LIMIT 1`, contentURL)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup news by url: %w", err)
	}
	return id, true, nil
}

// Insert stores one news row and returns its assigned id. mainCompanyID is
// nil when the keyword's own company could not be resolved from the
// analysis output.
func (r *NewsRepository) Insert(ctx context.Context, rec *domain.Record, mainCompanyID *int64) (int64, error) {
	query := `
		INSERT INTO news
			(company_id, title, description, content, published_at, author,
			 content_url, thumbnail_url, publisher)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING news_id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query,
		mainCompanyID,
		rec.Title,
		rec.Description,
		rec.Content,
		rec.PublishedAt,
		rec.Author,
		rec.ContentURL,
		rec.ThumbnailURL,
		rec.Publisher,
	)
	if err != nil {
		return 0, fmt.Errorf("insert news %s: %w", rec.ContentURL, err)
	}

	return id, nil
}

// InsertImages stores one row per image URL for a news item. No-op on empty
// input. Each URL is its own statement; a mid-loop failure leaves earlier
// rows committed, which the pipeline accepts.
func (r *NewsRepository) InsertImages(ctx context.Context, newsID int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	query := `INSERT INTO news_images (news_id, image_url) VALUES ($1, $2)`
	for _, u := range urls {
		if _, err := r.db.ExecContext(ctx, query, newsID, u); err != nil {
			return fmt.Errorf("insert news image for news %d: %w", newsID, err)
		}
	}

	return nil
}

// InsertSentiment stores one sentiment link for a (news, company) pair.
func (r *NewsRepository) InsertSentiment(ctx context.Context, newsID, companyID int64, sentiment string) error {
	query := `INSERT INTO company_sentiments (news_id, company_id, sentiment) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, newsID, companyID, sentiment); err != nil {
		return fmt.Errorf("insert company sentiment (news %d, company %d): %w", newsID, companyID, err)
	}
	return nil
}

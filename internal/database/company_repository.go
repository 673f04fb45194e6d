package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newsradar/internal/domain"
)

// CompanyRepository handles database operations for companies. Company rows
// accumulate monotonically; nothing here deletes or updates them.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindOrCreate resolves a company payload to its id. Lookup precedence:
// stock code first when present, then name; a row is inserted only when
// neither matches. Concurrent callers may race to insert — the unique
// constraints on stock_code and name are the authority.
func (r *CompanyRepository) FindOrCreate(ctx context.Context, cs domain.CompanySentiment) (int64, error) {
	if cs.StockCode != "" {
		id, found, err := r.lookup(ctx,
			`SELECT company_id FROM companies WHERE stock_code = $1`, cs.StockCode)
		if err != nil {
			return 0, fmt.Errorf("lookup company by stock code: %w", err)
		}
		if found {
			return id, nil
		}
	}

	id, found, err := r.lookup(ctx,
		`SELECT company_id FROM companies WHERE name = $1`, cs.MappedName)
	if err != nil {
		return 0, fmt.Errorf("lookup company by name: %w", err)
	}
	if found {
		return id, nil
	}

	return r.insert(ctx, cs)
}

// lookup runs a single-column id query, mapping no-rows to found=false.
func (r *CompanyRepository) lookup(ctx context.Context, query string, arg any) (int64, bool, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// insert creates a new company row and returns its assigned id.
func (r *CompanyRepository) insert(ctx context.Context, cs domain.CompanySentiment) (int64, error) {
	query := `
		INSERT INTO companies (name, stock_code, is_domestic, is_listed)
		VALUES ($1, $2, $3, $4)
		RETURNING company_id
	`

	var stockCode *string
	if cs.StockCode != "" {
		stockCode = &cs.StockCode
	}

	var id int64
	err := r.db.GetContext(ctx, &id, query, cs.MappedName, stockCode, cs.IsDomestic(), cs.IsListed())
	if err != nil {
		return 0, fmt.Errorf("insert company %q: %w", cs.MappedName, err)
	}

	return id, nil
}

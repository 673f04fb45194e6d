// Package backup writes durable JSON snapshots of persisted records and
// reads bulk-import files carrying the same shape.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonesrussell/newsradar/internal/domain"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store writes one pretty-printed JSON file per persisted news item into an
// append-only backup directory, created on first use.
type Store struct {
	dir string
}

// NewStore creates a backup store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Write stores the merged record under its assigned news id and returns the
// file path.
func (s *Store) Write(newsID int64, rec *domain.Record) (string, error) {
	return s.WriteNamed(strconv.FormatInt(newsID, 10), rec)
}

// WriteNamed stores the merged record under an arbitrary file name.
func (s *Store) WriteNamed(name string, rec *domain.Record) (string, error) {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal backup record: %w", err)
	}

	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}

	return path, nil
}

// ReadRecords loads a bulk-import file: a JSON array of pre-analyzed
// article + analysis records.
func ReadRecords(path string) ([]domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse import file %s: %w", path, err)
	}

	return records, nil
}

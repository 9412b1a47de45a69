package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Code maps an integer classification code to its description.
type Code struct {
	Code        int64  `json:"code"`
	Description string `json:"description"`
}

// Neighborhood maps a district number to its name.
type Neighborhood struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReferenceStore reads the seed-only codes and neighborhoods tables. Both
// lookups return the full table when the key set is empty.
type ReferenceStore interface {
	ListCodes(ctx context.Context, codes []string) ([]Code, error)
	ListNeighborhoods(ctx context.Context, ids []string) ([]Neighborhood, error)
}

type referenceStore struct {
	db *sql.DB
}

func NewReferenceStore(db *sql.DB) ReferenceStore {
	return &referenceStore{db: db}
}

func (s *referenceStore) ListCodes(ctx context.Context, codes []string) ([]Code, error) {
	query := `SELECT code, description FROM codes`
	query, args := appendKeyFilter(query, "code", codes)
	query += ` ORDER BY code ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Code{}
	for rows.Next() {
		var c Code
		if err := rows.Scan(&c.Code, &c.Description); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (s *referenceStore) ListNeighborhoods(ctx context.Context, ids []string) ([]Neighborhood, error) {
	query := `SELECT id, name FROM neighborhoods`
	query, args := appendKeyFilter(query, "id", ids)
	query += ` ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Neighborhood{}
	for rows.Next() {
		var n Neighborhood
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

// appendKeyFilter adds a WHERE key IN (...) clause for the non-blank values.
func appendKeyFilter(query, column string, values []string) (string, []any) {
	var args []any
	for _, raw := range values {
		if v := strings.TrimSpace(raw); v != "" {
			args = append(args, v)
		}
	}
	if len(args) == 0 {
		return query, nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(args)), ",")
	return query + fmt.Sprintf(" WHERE %s IN (%s)", column, placeholders), args
}

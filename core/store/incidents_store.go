package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Incident mirrors one row of the incidents table. DateTime keeps the stored
// combined form "YYYY-MM-DDTHH:MM:SS"; splitting and filtering happen above
// this layer.
type Incident struct {
	CaseNumber         string `json:"case_number"`
	DateTime           string `json:"date_time"`
	Code               int64  `json:"code"`
	Incident           string `json:"incident"`
	PoliceGrid         int64  `json:"police_grid"`
	NeighborhoodNumber int64  `json:"neighborhood_number"`
	Block              string `json:"block"`
}

// IncidentsStore executes raw reads and guarded writes against the incidents
// table. It performs no filtering, sorting or shaping.
type IncidentsStore interface {
	ListAll(ctx context.Context) ([]Incident, error)
	GetByCaseNumber(ctx context.Context, caseNumber string) (*Incident, error)
	Insert(ctx context.Context, inc *Incident) error
	Delete(ctx context.Context, caseNumber string) (*Incident, error)
}

// ErrDuplicate reports an insert whose case number is already present.
var ErrDuplicate = errors.New("duplicate case number")

// ErrMissing reports a delete whose case number is not present.
var ErrMissing = errors.New("unknown case number")

type incidentsStore struct {
	db *sql.DB
}

func NewIncidentsStore(db *sql.DB) IncidentsStore {
	return &incidentsStore{db: db}
}

const incidentColumns = `case_number, date_time, code, incident, police_grid, neighborhood_number, block`

// ListAll returns every stored incident in insertion (rowid) order.
func (s *incidentsStore) ListAll(ctx context.Context) ([]Incident, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+incidentColumns+` FROM incidents ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Incident
	for rows.Next() {
		var inc Incident
		if err := rows.Scan(&inc.CaseNumber, &inc.DateTime, &inc.Code, &inc.Incident, &inc.PoliceGrid, &inc.NeighborhoodNumber, &inc.Block); err != nil {
			return nil, err
		}
		res = append(res, inc)
	}
	return res, rows.Err()
}

func (s *incidentsStore) GetByCaseNumber(ctx context.Context, caseNumber string) (*Incident, error) {
	if strings.TrimSpace(caseNumber) == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE case_number=?`, caseNumber)
	return scanIncident(row)
}

// Insert writes one incident inside a transaction, re-checking the uniqueness
// of the case number so that two concurrent creates cannot both pass the
// service-level guard.
func (s *incidentsStore) Insert(ctx context.Context, inc *Incident) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM incidents WHERE case_number=?`, inc.CaseNumber).Scan(&exists); err != nil {
		tx.Rollback()
		return err
	}
	if exists > 0 {
		tx.Rollback()
		return fmt.Errorf("%w: %s", ErrDuplicate, inc.CaseNumber)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO incidents(`+incidentColumns+`)
		VALUES(?,?,?,?,?,?,?)`,
		inc.CaseNumber, inc.DateTime, inc.Code, inc.Incident, inc.PoliceGrid, inc.NeighborhoodNumber, inc.Block); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Delete removes one incident inside a transaction and returns the
// pre-deletion snapshot. The lookup and the delete share the transaction so a
// concurrent delete of the same row cannot report success twice.
func (s *incidentsStore) Delete(ctx context.Context, caseNumber string) (*Incident, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	row := tx.QueryRowContext(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE case_number=?`, caseNumber)
	inc, err := scanIncident(row)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if inc == nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s", ErrMissing, caseNumber)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM incidents WHERE case_number=?`, caseNumber); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner) (*Incident, error) {
	var inc Incident
	if err := row.Scan(&inc.CaseNumber, &inc.DateTime, &inc.Code, &inc.Incident, &inc.PoliceGrid, &inc.NeighborhoodNumber, &inc.Block); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inc, nil
}

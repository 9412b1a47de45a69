package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"stpaul-crime/config"
	"stpaul-crime/core/utils"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.AppConfig{DBPath: filepath.Join(t.TempDir(), "crime.sqlite3")}
	logger := utils.NewLogger()
	db, err := NewDB(cfg, logger)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := ApplyMigrations(context.Background(), db, logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func sampleIncident(caseNumber, dateTime string) *Incident {
	return &Incident{
		CaseNumber:         caseNumber,
		DateTime:           dateTime,
		Code:               600,
		Incident:           "Theft",
		PoliceGrid:         87,
		NeighborhoodNumber: 11,
		Block:              "5XX UNIVERSITY AV W",
	}
}

func TestInsertAndListAll(t *testing.T) {
	s := NewIncidentsStore(setupDB(t))
	ctx := context.Background()

	if err := s.Insert(ctx, sampleIncident("A", "2023-01-01T08:00:00")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(ctx, sampleIncident("B", "2023-02-01T08:00:00")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Insertion order, no sorting at this layer.
	if rows[0].CaseNumber != "A" || rows[1].CaseNumber != "B" {
		t.Fatalf("unexpected order: %s, %s", rows[0].CaseNumber, rows[1].CaseNumber)
	}
}

func TestInsertDuplicate(t *testing.T) {
	s := NewIncidentsStore(setupDB(t))
	ctx := context.Background()

	if err := s.Insert(ctx, sampleIncident("A", "2023-01-01T08:00:00")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := s.Insert(ctx, sampleIncident("A", "2023-02-01T09:00:00"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := s.GetByCaseNumber(ctx, "A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DateTime != "2023-01-01T08:00:00" {
		t.Fatalf("row changed by failed insert: %s", got.DateTime)
	}
}

func TestGetByCaseNumberAbsent(t *testing.T) {
	s := NewIncidentsStore(setupDB(t))

	got, err := s.GetByCaseNumber(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestDeleteReturnsSnapshot(t *testing.T) {
	s := NewIncidentsStore(setupDB(t))
	ctx := context.Background()

	if err := s.Insert(ctx, sampleIncident("A", "2023-01-01T08:00:00")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	snap, err := s.Delete(ctx, "A")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if snap == nil || snap.CaseNumber != "A" {
		t.Fatalf("bad snapshot: %+v", snap)
	}
	rows, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}

func TestDeleteMissing(t *testing.T) {
	s := NewIncidentsStore(setupDB(t))

	_, err := s.Delete(context.Background(), "CASE-999")
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
}

func TestReferenceSeedData(t *testing.T) {
	rs := NewReferenceStore(setupDB(t))
	ctx := context.Background()

	codes, err := rs.ListCodes(ctx, nil)
	if err != nil {
		t.Fatalf("codes: %v", err)
	}
	if len(codes) == 0 {
		t.Fatal("expected seeded codes")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1].Code >= codes[i].Code {
			t.Fatalf("codes not ordered: %d >= %d", codes[i-1].Code, codes[i].Code)
		}
	}

	hoods, err := rs.ListNeighborhoods(ctx, nil)
	if err != nil {
		t.Fatalf("neighborhoods: %v", err)
	}
	if len(hoods) != 17 {
		t.Fatalf("expected 17 districts, got %d", len(hoods))
	}
}

func TestReferenceKeyFilter(t *testing.T) {
	rs := NewReferenceStore(setupDB(t))
	ctx := context.Background()

	codes, err := rs.ListCodes(ctx, []string{"110", "600"})
	if err != nil {
		t.Fatalf("codes: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(codes))
	}
	if codes[0].Code != 110 || codes[1].Code != 600 {
		t.Fatalf("unexpected codes: %+v", codes)
	}

	hoods, err := rs.ListNeighborhoods(ctx, []string{"3"})
	if err != nil {
		t.Fatalf("neighborhoods: %v", err)
	}
	if len(hoods) != 1 || hoods[0].Name != "West Side" {
		t.Fatalf("unexpected neighborhoods: %+v", hoods)
	}
}

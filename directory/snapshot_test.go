// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
)

func setupSnapshotDB(t *testing.T) (*sql.DB, SnapshotRepository) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	repo := NewSnapshotRepository(db)
	if err := repo.CreateSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db, repo
}

func TestSnapshotSaveAndLoad(t *testing.T) {
	db, repo := setupSnapshotDB(t)
	defer db.Close()

	tbl := NewTable([][]string{Headers, fullRow()})
	takenAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := repo.Save(WorkingCopy, tbl, takenAt)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s, err := repo.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Tab != WorkingCopy || s.RowCount != 1 {
		t.Errorf("unexpected snapshot metadata: %+v", s)
	}

	if !s.TakenAt.Equal(takenAt) {
		t.Errorf("TakenAt = %v, want %v", s.TakenAt, takenAt)
	}

	if len(s.Values) != 2 || s.Values[1][0] != "Ana" {
		t.Errorf("unexpected values: %v", s.Values)
	}
}

func TestSnapshotListAndPrune(t *testing.T) {
	db, repo := setupSnapshotDB(t)
	defer db.Close()

	tbl := NewTable([][]string{Headers, fullRow()})
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		if _, err := repo.Save(WorkingCopy, tbl, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	if _, err := repo.Save(Production, tbl, base); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	list, err := repo.List(WorkingCopy)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(list) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(list))
	}

	if !list[0].TakenAt.Equal(base.Add(3 * time.Hour)) {
		t.Errorf("expected newest first, got %v", list[0].TakenAt)
	}

	if list[0].Values != nil {
		t.Errorf("List should not load values")
	}

	removed, err := repo.Prune(WorkingCopy, 2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	list, _ = repo.List(WorkingCopy)
	if len(list) != 2 {
		t.Errorf("expected 2 snapshots left, got %d", len(list))
	}

	other, _ := repo.List(Production)
	if len(other) != 1 {
		t.Errorf("prune must not touch other tabs, got %d", len(other))
	}
}

func TestSnapshotLoadMissing(t *testing.T) {
	db, repo := setupSnapshotDB(t)
	defer db.Close()

	if _, err := repo.Load(42); err == nil {
		t.Error("expected error for missing snapshot")
	}
}

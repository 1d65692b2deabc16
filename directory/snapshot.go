// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is a point in time copy of a tab.
type Snapshot struct {
	ID       int64      `json:"id"`
	Tab      string     `json:"tab"`
	TakenAt  time.Time  `json:"taken_at"`
	RowCount int        `json:"row_count"`
	Values   [][]string `json:"values,omitempty"`
}

// SnapshotRepository keeps local backups of the sheet in duckdb.
type SnapshotRepository interface {
	// CreateSchema creates the snapshots table
	CreateSchema() error

	// Save stores the table contents and returns the new snapshot id
	Save(tab string, t *Table, takenAt time.Time) (int64, error)

	// List returns snapshot metadata, newest first, without values
	List(tab string) ([]*Snapshot, error)

	// Load returns a snapshot with its values
	Load(id int64) (*Snapshot, error)

	// Prune deletes all but the newest keep snapshots of tab
	Prune(tab string, keep int) (int64, error)
}

type sqlSnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &sqlSnapshotRepository{db: db}
}

func (r *sqlSnapshotRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS snapshots_seq START 1;

		CREATE TABLE IF NOT EXISTS snapshots (
			id BIGINT PRIMARY KEY DEFAULT nextval('snapshots_seq'),
			tab VARCHAR NOT NULL,
			taken_at TIMESTAMP NOT NULL,
			row_count INTEGER NOT NULL,
			payload VARCHAR NOT NULL
		);
	`)

	return err
}

func (r *sqlSnapshotRepository) Save(tab string, t *Table, takenAt time.Time) (int64, error) {
	values := t.Values()

	payload, err := json.Marshal(values)
	if err != nil {
		return 0, fmt.Errorf("marshaling snapshot: %w", err)
	}

	var id int64

	err = r.db.QueryRow(
		`INSERT INTO snapshots (tab, taken_at, row_count, payload) VALUES (?, ?, ?, ?) RETURNING id`,
		tab, takenAt.UTC(), len(values)-1, string(payload),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting snapshot: %w", err)
	}

	return id, nil
}

func (r *sqlSnapshotRepository) List(tab string) ([]*Snapshot, error) {
	rows, err := r.db.Query(
		`SELECT id, tab, taken_at, row_count FROM snapshots WHERE tab = ? ORDER BY taken_at DESC, id DESC`,
		tab,
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []*Snapshot

	for rows.Next() {
		s := &Snapshot{}
		if err := rows.Scan(&s.ID, &s.Tab, &s.TakenAt, &s.RowCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}

		out = append(out, s)
	}

	return out, rows.Err()
}

func (r *sqlSnapshotRepository) Load(id int64) (*Snapshot, error) {
	s := &Snapshot{}

	var payload string

	err := r.db.QueryRow(
		`SELECT id, tab, taken_at, row_count, payload FROM snapshots WHERE id = ?`, id,
	).Scan(&s.ID, &s.Tab, &s.TakenAt, &s.RowCount, &payload)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %d: %w", id, err)
	}

	if err := json.Unmarshal([]byte(payload), &s.Values); err != nil {
		return nil, fmt.Errorf("decoding snapshot %d: %w", id, err)
	}

	return s, nil
}

func (r *sqlSnapshotRepository) Prune(tab string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	res, err := r.db.Exec(fmt.Sprintf(`
		DELETE FROM snapshots
		WHERE tab = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE tab = ? ORDER BY taken_at DESC, id DESC LIMIT %d
		)`, keep), tab, tab)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}

	return res.RowsAffected()
}

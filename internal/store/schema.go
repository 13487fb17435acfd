package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the run and snapshot tables. Snapshots keep an
// explicit sequence column so the repertoire's stable antibody order
// survives storage.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	days       INTEGER NOT NULL,
	dt         REAL NOT NULL,
	params     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	day             INTEGER NOT NULL,
	seq             INTEGER NOT NULL,
	antibody_type   TEXT NOT NULL,
	variant         INTEGER NOT NULL,
	capacity        REAL NOT NULL,
	concentration   REAL NOT NULL,
	antigen_count   INTEGER NOT NULL,
	antigen_present INTEGER NOT NULL,
	PRIMARY KEY (run_id, day, seq)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_run_day ON snapshots(run_id, day);
`

// InitSchema creates the tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

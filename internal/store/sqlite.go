package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/albapepper/scoracle-scout/internal/match"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS store_revision (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		revision INTEGER NOT NULL
	);

	INSERT OR IGNORE INTO store_revision (id, revision) VALUES (1, 0);

	CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		team TEXT NOT NULL,
		recorded_at INTEGER NOT NULL,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_team ON records(team);
`

const sqliteUpsert = `
	INSERT INTO records (id, team, recorded_at, payload, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		team = excluded.team,
		recorded_at = excluded.recorded_at,
		payload = excluded.payload,
		updated_at = excluded.updated_at`

// SQLite is a single-file store backed by modernc.org/sqlite. Records keep
// their first insertion position when replaced.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; SQLite locks the whole file anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) Snapshot(ctx context.Context) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	var snap Snapshot
	if err := tx.QueryRowContext(ctx, `SELECT revision FROM store_revision WHERE id = 1`).Scan(&snap.Revision); err != nil {
		return Snapshot{}, fmt.Errorf("read revision: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT payload FROM records ORDER BY seq`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	snap.Records = make([]match.Record, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return Snapshot{}, fmt.Errorf("scan record: %w", err)
		}
		r, err := decodePayload([]byte(payload))
		if err != nil {
			return Snapshot{}, err
		}
		snap.Records = append(snap.Records, r)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate records: %w", err)
	}
	return snap, nil
}

func (s *SQLite) Revision(ctx context.Context) (int64, error) {
	var rev int64
	if err := s.db.QueryRowContext(ctx, `SELECT revision FROM store_revision WHERE id = 1`).Scan(&rev); err != nil {
		return 0, fmt.Errorf("read revision: %w", err)
	}
	return rev, nil
}

func (s *SQLite) Get(ctx context.Context, id string) (match.Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM records WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return match.Record{}, ErrNotFound
	}
	if err != nil {
		return match.Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return decodePayload([]byte(payload))
}

func (s *SQLite) Upsert(ctx context.Context, r match.Record) (match.Record, error) {
	r = Prepare(r, s.now())
	err := s.write(ctx, func(tx *sql.Tx) error {
		return s.put(ctx, tx, r)
	})
	if err != nil {
		return match.Record{}, err
	}
	return r, nil
}

func (s *SQLite) Merge(ctx context.Context, records []match.Record) (MergeResult, error) {
	var result MergeResult
	err := s.write(ctx, func(tx *sql.Tx) error {
		existing, err := s.timestamps(ctx, tx)
		if err != nil {
			return err
		}
		ops, res := planMerge(existing, records, s.now())
		for _, op := range ops {
			if err := s.put(ctx, tx, op.record); err != nil {
				return err
			}
		}
		result = res
		return nil
	})
	if err != nil {
		return MergeResult{}, err
	}
	return result, nil
}

func (s *SQLite) Clear(ctx context.Context) (int, error) {
	var n int64
	err := s.write(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM records`)
		if err != nil {
			return fmt.Errorf("clear records: %w", err)
		}
		n, _ = res.RowsAffected()
		return nil
	})
	return int(n), err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// write runs fn in a transaction and bumps the revision before committing.
func (s *SQLite) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback() // Safe to call even after Commit()

	if err := fn(tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE store_revision SET revision = revision + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("bump revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) put(ctx context.Context, tx *sql.Tx, r match.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", r.ID, err)
	}
	_, err = tx.ExecContext(ctx, sqliteUpsert,
		r.ID, r.Team(), r.Timestamp, string(payload), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLite) timestamps(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, recorded_at FROM records`)
	if err != nil {
		return nil, fmt.Errorf("query timestamps: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var id string
		var ts int64
		if err := rows.Scan(&id, &ts); err != nil {
			return nil, fmt.Errorf("scan timestamp: %w", err)
		}
		out[id] = ts
	}
	return out, rows.Err()
}

func decodePayload(payload []byte) (match.Record, error) {
	var r match.Record
	if err := json.Unmarshal(payload, &r); err != nil {
		return match.Record{}, fmt.Errorf("decode stored record: %w", err)
	}
	return r, nil
}

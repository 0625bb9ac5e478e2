package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-scout/internal/db"
	"github.com/albapepper/scoracle-scout/internal/match"
)

// Postgres stores records in a shared database. Every write bumps the
// revision row first, which serializes writers, and signals
// records_changed with the new revision inside the same transaction.
type Postgres struct {
	pool *db.Pool
	now  func() time.Time
}

// NewPostgres wraps an open pool. The pool owner closes it.
func NewPostgres(pool *db.Pool) *Postgres {
	return &Postgres{pool: pool, now: time.Now}
}

func (p *Postgres) Snapshot(ctx context.Context) (Snapshot, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	var snap Snapshot
	if err := tx.QueryRow(ctx, "revision_get").Scan(&snap.Revision); err != nil {
		return Snapshot{}, fmt.Errorf("read revision: %w", err)
	}

	rows, err := tx.Query(ctx, "records_snapshot")
	if err != nil {
		return Snapshot{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	snap.Records = make([]match.Record, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return Snapshot{}, fmt.Errorf("scan record: %w", err)
		}
		r, err := decodePayload(payload)
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

func (p *Postgres) Revision(ctx context.Context) (int64, error) {
	var rev int64
	if err := p.pool.QueryRow(ctx, "revision_get").Scan(&rev); err != nil {
		return 0, fmt.Errorf("read revision: %w", err)
	}
	return rev, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (match.Record, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, "record_by_id", id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return match.Record{}, ErrNotFound
	}
	if err != nil {
		return match.Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return decodePayload(payload)
}

func (p *Postgres) Upsert(ctx context.Context, r match.Record) (match.Record, error) {
	r = Prepare(r, p.now())
	err := p.write(ctx, func(tx pgx.Tx) error {
		return put(ctx, tx, r)
	})
	if err != nil {
		return match.Record{}, err
	}
	return r, nil
}

func (p *Postgres) Merge(ctx context.Context, records []match.Record) (MergeResult, error) {
	var result MergeResult
	err := p.write(ctx, func(tx pgx.Tx) error {
		existing, err := timestamps(ctx, tx)
		if err != nil {
			return err
		}
		ops, res := planMerge(existing, records, p.now())
		for _, op := range ops {
			if err := put(ctx, tx, op.record); err != nil {
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

func (p *Postgres) Clear(ctx context.Context) (int, error) {
	var n int64
	err := p.write(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "records_clear")
		if err != nil {
			return fmt.Errorf("clear records: %w", err)
		}
		n = tag.RowsAffected()
		return nil
	})
	return int(n), err
}

// Close is a no-op; the pool is shared with health checks and the listener.
func (p *Postgres) Close() error { return nil }

func (p *Postgres) write(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback(ctx)

	var revision int64
	if err := tx.QueryRow(ctx, "revision_bump").Scan(&revision); err != nil {
		return fmt.Errorf("bump revision: %w", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "notify_records_changed", strconv.FormatInt(revision, 10)); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func put(ctx context.Context, tx pgx.Tx, r match.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", r.ID, err)
	}
	if _, err := tx.Exec(ctx, "record_upsert", r.ID, r.Team(), r.Timestamp, payload); err != nil {
		return fmt.Errorf("upsert record %s: %w", r.ID, err)
	}
	return nil
}

func timestamps(ctx context.Context, tx pgx.Tx) (map[string]int64, error) {
	rows, err := tx.Query(ctx, "record_timestamps")
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

// Package db provides a pgxpool-based connection pool with schema setup,
// prepared statement registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-scout/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// Schema is applied once before the pool is created. Every statement is
// idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS store_revision (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		revision BIGINT NOT NULL
	);

	INSERT INTO store_revision (id, revision) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;

	CREATE TABLE IF NOT EXISTS scouting_records (
		seq BIGSERIAL NOT NULL,
		id TEXT PRIMARY KEY,
		team TEXT NOT NULL,
		recorded_at BIGINT NOT NULL,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_scouting_records_seq ON scouting_records(seq);
	CREATE INDEX IF NOT EXISTS idx_scouting_records_team ON scouting_records(team);
`

// New applies the schema and creates a validated connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	if err := migrate(ctx, cfg.DatabaseURL); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// migrate runs Schema on a dedicated connection so that prepared statements
// registered by the pool always find their tables.
func migrate(ctx context.Context, url string) error {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// registerPreparedStatements registers all statements the record store uses.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Revision
		"revision_get":  "SELECT revision FROM store_revision WHERE id = 1",
		"revision_bump": "UPDATE store_revision SET revision = revision + 1 WHERE id = 1 RETURNING revision",

		// Records
		"records_snapshot":  "SELECT payload FROM scouting_records ORDER BY seq",
		"record_by_id":      "SELECT payload FROM scouting_records WHERE id = $1",
		"record_timestamps": "SELECT id, recorded_at FROM scouting_records",
		"records_clear":     "DELETE FROM scouting_records",

		// Replace keeps seq, so a record holds its first position.
		"record_upsert": `INSERT INTO scouting_records (id, team, recorded_at, payload, updated_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (id) DO UPDATE SET
				team = EXCLUDED.team,
				recorded_at = EXCLUDED.recorded_at,
				payload = EXCLUDED.payload,
				updated_at = now()`,

		// Notifications
		"notify_records_changed": "SELECT pg_notify('" + config.RecordsChannel + "', $1::text)",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps the
// HTTP response cache coherent across API instances. It holds a dedicated pgx
// connection (not from the pool) listening on the records_changed channel.
//
// Every store write signals the new revision in its transaction. Cache keys
// already carry the revision, so a notification only needs to drop entries
// that can no longer be served.
package listener

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-scout/internal/config"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Purger drops cached responses. *cache.Cache satisfies it.
type Purger interface {
	Purge() int
}

// Listener tracks the newest revision seen on the channel.
type Listener struct {
	cache  Purger
	logger *slog.Logger
	latest atomic.Int64
}

// New creates a Listener that purges c on every remote write.
func New(c Purger, logger *slog.Logger) *Listener {
	return &Listener{cache: c, logger: logger}
}

// Latest returns the highest revision received so far.
func (l *Listener) Latest() int64 {
	return l.latest.Load()
}

// Start opens a dedicated connection and listens on the records channel. It
// reconnects automatically on connection loss. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func (l *Listener) Start(ctx context.Context, dbURL string) {
	backoff := reconnectBackoff

	for {
		err := l.listenLoop(ctx, dbURL)
		if ctx.Err() != nil {
			l.logger.Info("Records listener stopped (context cancelled)")
			return
		}

		l.logger.Error("Records listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func (l *Listener) listenLoop(ctx context.Context, dbURL string) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+config.RecordsChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", config.RecordsChannel, err)
	}
	l.logger.Info("Records listener connected", "channel", config.RecordsChannel)

	// Writes may have landed while disconnected.
	l.cache.Purge()

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		l.Handle(notification.Payload)
	}
}

// Handle processes one notification payload: the store revision as decimal
// text. Revisions at or below the latest seen are stale and ignored.
func (l *Listener) Handle(payload string) bool {
	rev, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		l.logger.Warn("Failed to parse records notification",
			"payload", payload, "error", err)
		return false
	}

	for {
		seen := l.latest.Load()
		if rev <= seen {
			return false
		}
		if l.latest.CompareAndSwap(seen, rev) {
			break
		}
	}

	n := l.cache.Purge()
	l.logger.Debug("Records changed", "revision", rev, "purged", n)
	return true
}

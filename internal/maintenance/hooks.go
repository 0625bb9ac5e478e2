package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-scout/internal/store"
)

// BackupBeforeClear exports the store into dir ahead of a destructive clear.
// An empty dir or an empty store is a no-op. Call this before Store.Clear;
// when it fails the clear should not proceed.
func BackupBeforeClear(ctx context.Context, st store.Store, dir string, logger *slog.Logger) error {
	if dir == "" {
		return nil
	}
	snap, err := st.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read store: %w", err)
	}
	if len(snap.Records) == 0 {
		return nil
	}

	start := time.Now()
	path, n, err := WriteBackup(ctx, st, dir, start)
	dur := time.Since(start).Round(time.Millisecond)
	if err != nil {
		logger.Warn("Failed to back up records before clear",
			"dir", dir, "duration", dur, "error", err)
		return fmt.Errorf("backup before clear: %w", err)
	}
	logger.Info("Backed up records before clear", "path", path, "records", n, "duration", dur)
	return nil
}

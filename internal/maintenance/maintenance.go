// Package maintenance runs periodic background tasks as Go tickers.
// The service is already long-running, so scheduled work such as record
// backups is driven from here instead of an external cron.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/store"
	"github.com/albapepper/scoracle-scout/internal/transfer"
)

// Config controls maintenance tasks. Zero interval or empty dir disables
// backups.
type Config struct {
	BackupDir      string
	BackupInterval time.Duration
	BackupKeep     int // newest files kept after each backup; 0 keeps all
}

// FromConfig extracts the maintenance settings from the service config.
func FromConfig(cfg *config.Config) Config {
	return Config{
		BackupDir:      cfg.BackupDir,
		BackupInterval: cfg.BackupInterval,
		BackupKeep:     cfg.BackupKeep,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, st store.Store, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"backup_dir", cfg.BackupDir,
		"backup_interval", cfg.BackupInterval,
		"backup_keep", cfg.BackupKeep)

	tickers := make([]*time.Ticker, 0, 1)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Backup: export every record to a timestamped file when the store changed
	if cfg.BackupDir != "" && cfg.BackupInterval > 0 {
		b := NewBackups(st, cfg, logger)
		t := time.NewTicker(cfg.BackupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "backup", func() { b.Run(ctx) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Backups
// --------------------------------------------------------------------------

// Backups writes export files into a directory and prunes old ones. It skips
// a run when the store revision has not moved since the last file.
type Backups struct {
	store   store.Store
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
	lastRev int64
	written bool
}

func NewBackups(st store.Store, cfg Config, logger *slog.Logger) *Backups {
	return &Backups{store: st, cfg: cfg, logger: logger, now: time.Now}
}

// Run performs one backup cycle and logs the outcome.
func (b *Backups) Run(ctx context.Context) {
	path, n, err := b.Backup(ctx)
	if err != nil {
		b.logger.Warn("Backup: failed", "error", err)
		return
	}
	if path == "" {
		return
	}
	b.logger.Info("Backup: wrote records", "path", path, "records", n)

	removed, err := Prune(b.cfg.BackupDir, b.cfg.BackupKeep)
	if err != nil {
		b.logger.Warn("Backup: prune failed", "error", err)
	} else if removed > 0 {
		b.logger.Info("Backup: pruned old files", "count", removed)
	}
}

// Backup writes one export file unless nothing changed since the previous
// one. It returns the file path, or "" when skipped.
func (b *Backups) Backup(ctx context.Context) (string, int, error) {
	rev, err := b.store.Revision(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("read revision: %w", err)
	}
	if b.written && rev == b.lastRev {
		return "", 0, nil
	}

	path, n, err := WriteBackup(ctx, b.store, b.cfg.BackupDir, b.now())
	if err != nil {
		return "", 0, err
	}
	b.lastRev, b.written = rev, true
	return path, n, nil
}

// WriteBackup exports every record into dir. The file is written under a
// temporary name and renamed, so readers never see a partial export.
func WriteBackup(ctx context.Context, st store.Store, dir string, now time.Time) (string, int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create backup dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".backup-*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("create backup file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after a successful rename

	n, err := transfer.Export(ctx, st, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, fmt.Errorf("write backup: %w", err)
	}

	path := filepath.Join(dir, transfer.ExportFilename(now))
	if err := os.Rename(tmp, path); err != nil {
		return "", 0, fmt.Errorf("finalize backup: %w", err)
	}
	return path, n, nil
}

// Prune deletes all but the newest keep export files in dir. Files that do not
// follow the export naming scheme are left alone.
func Prune(dir string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("list backups: %w", err)
	}

	type backup struct {
		name string
		ms   int64
	}
	var found []backup
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ms, ok := exportTime(e.Name()); ok {
			found = append(found, backup{e.Name(), ms})
		}
	}
	if len(found) <= keep {
		return 0, nil
	}

	slices.SortFunc(found, func(a, b backup) int {
		switch {
		case a.ms > b.ms:
			return -1
		case a.ms < b.ms:
			return 1
		}
		return strings.Compare(b.name, a.name)
	})

	removed := 0
	for _, old := range found[keep:] {
		if err := os.Remove(filepath.Join(dir, old.name)); err != nil {
			return removed, fmt.Errorf("remove %s: %w", old.name, err)
		}
		removed++
	}
	return removed, nil
}

// exportTime parses the millisecond stamp out of an export filename.
func exportTime(name string) (int64, bool) {
	stamp, ok := strings.CutPrefix(name, transfer.ExportPrefix)
	if !ok {
		return 0, false
	}
	stamp, ok = strings.CutSuffix(stamp, ".json")
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

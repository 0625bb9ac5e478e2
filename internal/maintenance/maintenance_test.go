package maintenance

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/store"
	"github.com/albapepper/scoracle-scout/internal/transfer"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestBackupSkipsUnchangedStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := store.NewMemory()
	if _, err := st.Upsert(ctx, match.New("a", time.UnixMilli(1))); err != nil {
		t.Fatal(err)
	}

	b := NewBackups(st, Config{BackupDir: dir}, quietLogger())
	clock := time.UnixMilli(1_000)
	b.now = func() time.Time { return clock }

	path, n, err := b.Backup(ctx)
	if err != nil || path == "" || n != 1 {
		t.Fatalf("first backup got path=%q n=%d err=%v", path, n, err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, _, err := transfer.ReadRecords(f)
	if err != nil || len(recs) != 1 || recs[0].ID != "a" {
		t.Fatalf("backup contents got %+v err=%v", recs, err)
	}

	clock = clock.Add(time.Minute)
	if path, _, _ := b.Backup(ctx); path != "" {
		t.Errorf("unchanged store wrote %q", path)
	}

	if _, err := st.Upsert(ctx, match.New("b", time.UnixMilli(2))); err != nil {
		t.Fatal(err)
	}
	path, n, err = b.Backup(ctx)
	if err != nil || path == "" || n != 2 {
		t.Errorf("backup after write got path=%q n=%d err=%v", path, n, err)
	}
	if got := len(listDir(t, dir)); got != 2 {
		t.Errorf("files got %d want 2 (no temp files left)", got)
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"scouting_data_100.json",
		"scouting_data_900.json",
		"scouting_data_1000.json",
		"scouting_data_50.json",
		"notes.txt",
		"scouting_data_bad.json",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := Prune(dir, 2)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed got %d want 2", removed)
	}
	got := listDir(t, dir)
	slices.Sort(got)
	want := []string{"notes.txt", "scouting_data_1000.json", "scouting_data_900.json", "scouting_data_bad.json"}
	if !slices.Equal(got, want) {
		t.Errorf("remaining got %v want %v", got, want)
	}

	if removed, _ := Prune(dir, 0); removed != 0 {
		t.Errorf("keep=0 removed %d", removed)
	}
}

func TestBackupBeforeClear(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "backups")
	st := store.NewMemory()

	if err := BackupBeforeClear(ctx, st, dir, quietLogger()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("empty store created backup dir")
	}

	if _, err := st.Upsert(ctx, match.New("a", time.UnixMilli(1))); err != nil {
		t.Fatal(err)
	}
	if err := BackupBeforeClear(ctx, st, dir, quietLogger()); err != nil {
		t.Fatal(err)
	}
	if got := len(listDir(t, dir)); got != 1 {
		t.Errorf("backup files got %d want 1", got)
	}
	if err := BackupBeforeClear(ctx, st, "", quietLogger()); err != nil {
		t.Errorf("empty dir: %v", err)
	}
}

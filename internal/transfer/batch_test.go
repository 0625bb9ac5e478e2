package transfer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/store"
)

func writeExport(t *testing.T, dir, name string, records ...match.Record) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := WriteRecords(f, records); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	newer := sample("a", "118")
	newer.Timestamp++
	newer.Auto.Coral.L4 = 9

	paths := []string{
		writeExport(t, dir, "one.json", sample("a", "118"), sample("b", "254")),
		writeExport(t, dir, "two.json", newer, sample("c", "1114")),
		filepath.Join(dir, "missing.json"),
		writeExport(t, dir, "three.json", sample("b", "254")),
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"not":"array"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	paths = append(paths, filepath.Join(dir, "bad.json"))

	st := store.NewMemory()
	res := ImportFiles(ctx, st, paths, 3, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if res.Failed != 2 {
		t.Errorf("failed got %d want 2", res.Failed)
	}
	want := store.MergeResult{Added: 3, Updated: 1, Skipped: 1}
	if res.Total.MergeResult != want {
		t.Errorf("totals got %+v want %+v", res.Total.MergeResult, want)
	}
	if res.Total.Read != 5 {
		t.Errorf("read got %d want 5", res.Total.Read)
	}
	if res.Files[1].Result.Updated != 1 || res.Files[2].Err == nil {
		t.Errorf("per-file results got %+v", res.Files)
	}

	snap, _ := st.Snapshot(ctx)
	ids := make([]string, 0, len(snap.Records))
	for _, r := range snap.Records {
		ids = append(ids, r.ID)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("store order got %v", ids)
	}
	if snap.Records[0].Auto.Coral.L4 != 9 {
		t.Errorf("newer record not applied: %+v", snap.Records[0].Auto)
	}
}

func TestImportFilesEmpty(t *testing.T) {
	res := ImportFiles(context.Background(), store.NewMemory(), nil, 4, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if len(res.Files) != 0 || res.Failed != 0 {
		t.Errorf("got %+v", res)
	}
}

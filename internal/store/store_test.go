package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/albapepper/scoracle-scout/internal/match"
)

func rec(id, team string, ts int64) match.Record {
	r := match.Record{ID: id, Timestamp: ts}
	r.Match.Type = match.Qualification
	r.Match.TeamNumber = team
	return r
}

func ids(records []match.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

// backends returns a fresh instance of every backend that runs without
// external services.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "scout.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first, err := s.Upsert(ctx, rec("a", "118", 100))
			if err != nil {
				t.Fatalf("Upsert: %v", err)
			}
			if _, err := s.Upsert(ctx, rec("b", "254", 200)); err != nil {
				t.Fatalf("Upsert: %v", err)
			}

			replaced := first
			replaced.Match.TeamNumber = "1114"
			if _, err := s.Upsert(ctx, replaced); err != nil {
				t.Fatalf("Upsert replace: %v", err)
			}

			got, err := s.Get(ctx, "a")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Match.TeamNumber != "1114" {
				t.Errorf("replaced team got %q want 1114", got.Match.TeamNumber)
			}

			snap, err := s.Snapshot(ctx)
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if want := []string{"a", "b"}; !slices.Equal(ids(snap.Records), want) {
				t.Errorf("order got %v want %v", ids(snap.Records), want)
			}
			if snap.Revision != 3 {
				t.Errorf("revision got %d want 3", snap.Revision)
			}

			if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing got %v want ErrNotFound", err)
			}
		})
	}
}

func TestUpsertAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Upsert(ctx, rec("", "118", 0))
			if err != nil {
				t.Fatalf("Upsert: %v", err)
			}
			if got.ID == "" {
				t.Fatal("expected generated id")
			}
			if got.Timestamp == 0 {
				t.Fatal("expected assigned timestamp")
			}
			if _, err := s.Get(ctx, got.ID); err != nil {
				t.Fatalf("Get generated id: %v", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, r := range []match.Record{rec("a", "118", 100), rec("b", "254", 100)} {
				if _, err := s.Upsert(ctx, r); err != nil {
					t.Fatalf("Upsert: %v", err)
				}
			}

			newer := rec("a", "118", 200)
			newer.Auto.Coral.L4 = 3
			incoming := []match.Record{
				newer,                 // replaces a
				rec("b", "254", 50),   // older, skipped
				rec("c", "1114", 100), // appended
				rec("c", "9999", 300), // duplicate within batch, skipped
				rec("", "33", 100),    // appended with generated id
			}

			res, err := s.Merge(ctx, incoming)
			if err != nil {
				t.Fatalf("Merge: %v", err)
			}
			want := MergeResult{Added: 2, Updated: 1, Skipped: 2}
			if res != want {
				t.Fatalf("Merge result got %+v want %+v", res, want)
			}

			snap, err := s.Snapshot(ctx)
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if len(snap.Records) != 4 {
				t.Fatalf("records got %d want 4", len(snap.Records))
			}
			if got := ids(snap.Records)[:3]; !slices.Equal(got, []string{"a", "b", "c"}) {
				t.Errorf("order got %v want [a b c ...]", got)
			}
			if snap.Records[0].Auto.Coral.L4 != 3 {
				t.Errorf("newer record not applied")
			}
			if snap.Records[2].Match.TeamNumber != "1114" {
				t.Errorf("first duplicate should win, got team %q", snap.Records[2].Match.TeamNumber)
			}
		})
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Merge(ctx, []match.Record{rec("a", "1", 1), rec("b", "2", 1)}); err != nil {
				t.Fatalf("Merge: %v", err)
			}
			before, _ := s.Snapshot(ctx)

			n, err := s.Clear(ctx)
			if err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if n != 2 {
				t.Errorf("cleared got %d want 2", n)
			}

			after, err := s.Snapshot(ctx)
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			if len(after.Records) != 0 {
				t.Errorf("records after clear got %d want 0", len(after.Records))
			}
			if after.Revision <= before.Revision {
				t.Errorf("revision did not advance: %d -> %d", before.Revision, after.Revision)
			}
		})
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scout.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, err := s.Upsert(ctx, rec("a", "118", 1)); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	s.Close()

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	snap, err := reopened.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Records) != 1 || snap.Revision != 1 {
		t.Fatalf("got %d records at revision %d, want 1 at 1", len(snap.Records), snap.Revision)
	}
}

func TestPrepare(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	kept := Prepare(rec("x", "1", 5), now)
	if kept.ID != "x" || kept.Timestamp != 5 {
		t.Errorf("Prepare changed populated record: %+v", kept)
	}

	filled := Prepare(rec("", "1", 0), now)
	if filled.ID == "" || filled.Timestamp != now.UnixMilli() {
		t.Errorf("Prepare got id=%q ts=%d", filled.ID, filled.Timestamp)
	}
}

func TestMergeResultSummary(t *testing.T) {
	r := MergeResult{Added: 1}
	r.Add(MergeResult{Added: 2, Updated: 1, Skipped: 4})
	if got, want := r.Summary(), "added=3 updated=1 skipped=4"; got != want {
		t.Errorf("Summary got %q want %q", got, want)
	}
}

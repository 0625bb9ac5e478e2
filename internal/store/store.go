// Package store persists scouting records. Backends hold the list of records
// in capture order and support replace-by-id, merge-import and full clear.
//
// Every mutation advances the store revision; a Snapshot pairs the records
// with the revision they were read at so callers can memoize derived data.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/scoracle-scout/internal/match"
)

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Snapshot is a read-only view of the store at one revision.
type Snapshot struct {
	Revision int64
	Records  []match.Record
}

// Store is the record store adapter used by the API and CLI.
type Store interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	// Revision returns the current revision without reading records.
	Revision(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (match.Record, error)
	// Upsert replaces the record with the same id or appends it. Missing ids
	// and timestamps are assigned; the stored record is returned.
	Upsert(ctx context.Context, r match.Record) (match.Record, error)
	Merge(ctx context.Context, records []match.Record) (MergeResult, error)
	Clear(ctx context.Context) (int, error)
	Close() error
}

// MergeResult tracks counts from a merge-import.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Add merges another MergeResult into this one.
func (r *MergeResult) Add(other MergeResult) {
	r.Added += other.Added
	r.Updated += other.Updated
	r.Skipped += other.Skipped
}

// Summary returns a human-readable summary of the merge.
func (r MergeResult) Summary() string {
	return fmt.Sprintf("added=%d updated=%d skipped=%d", r.Added, r.Updated, r.Skipped)
}

// Prepare assigns an id and capture timestamp when the record lacks them.
func Prepare(r match.Record, now time.Time) match.Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp == 0 {
		r.Timestamp = now.UnixMilli()
	}
	return r
}

// mergeOp is one write decided by planMerge.
type mergeOp struct {
	record  match.Record
	replace bool
}

// planMerge decides which incoming records to write given the timestamps of
// the records already stored (keyed by id):
//   - unknown ids are appended in input order
//   - known ids are replaced only by a strictly newer timestamp
//   - a repeated id within the batch keeps its first occurrence
func planMerge(existing map[string]int64, incoming []match.Record, now time.Time) ([]mergeOp, MergeResult) {
	var result MergeResult
	ops := make([]mergeOp, 0, len(incoming))
	seen := make(map[string]struct{}, len(incoming))

	for _, r := range incoming {
		r = Prepare(r, now)
		if _, dup := seen[r.ID]; dup {
			result.Skipped++
			continue
		}
		seen[r.ID] = struct{}{}

		ts, known := existing[r.ID]
		switch {
		case !known:
			ops = append(ops, mergeOp{record: r})
			result.Added++
		case r.Timestamp > ts:
			ops = append(ops, mergeOp{record: r, replace: true})
			result.Updated++
		default:
			result.Skipped++
		}
	}
	return ops, result
}

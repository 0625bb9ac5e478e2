// Package transfer moves scouting records between devices: whole-store JSON
// files and single-record QR payloads.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/store"
)

// ErrInvalidFile is returned when an import file is not a JSON array.
var ErrInvalidFile = errors.New("invalid import file: expected a JSON array of records")

// ImportResult tracks counts and errors from an import.
type ImportResult struct {
	store.MergeResult
	Read   int      `json:"read"`
	Errors []string `json:"errors,omitempty"`
}

// AddErrorf records a formatted error message.
func (r *ImportResult) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the import.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf("read=%d %s errors=%d", r.Read, r.MergeResult.Summary(), len(r.Errors))
}

// ExportPrefix starts every export filename.
const ExportPrefix = "scouting_data_"

// ExportFilename is the attachment name used for downloads and backups.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("%s%d.json", ExportPrefix, now.UnixMilli())
}

// ReadRecords decodes a JSON array of records. Elements that fail to decode
// are reported in the result and skipped; the rest are returned in order.
func ReadRecords(r io.Reader) ([]match.Record, ImportResult, error) {
	var result ImportResult

	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, result, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	records := make([]match.Record, 0, len(raw))
	for i, elem := range raw {
		var rec match.Record
		if err := json.Unmarshal(elem, &rec); err != nil {
			result.AddErrorf("record %d: %v", i, err)
			continue
		}
		records = append(records, rec)
	}
	result.Read = len(records)
	return records, result, nil
}

// Import reads a JSON array from r and merges it into s.
func Import(ctx context.Context, s store.Store, r io.Reader) (ImportResult, error) {
	records, result, err := ReadRecords(r)
	if err != nil {
		return result, err
	}
	merged, err := s.Merge(ctx, records)
	if err != nil {
		return result, fmt.Errorf("merge records: %w", err)
	}
	result.MergeResult = merged
	return result, nil
}

// WriteRecords writes records as an indented JSON array.
func WriteRecords(w io.Writer, records []match.Record) error {
	if records == nil {
		records = []match.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Export writes the full store contents to w and returns the record count.
func Export(ctx context.Context, s store.Store, w io.Writer) (int, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot: %w", err)
	}
	if err := WriteRecords(w, snap.Records); err != nil {
		return 0, fmt.Errorf("write records: %w", err)
	}
	return len(snap.Records), nil
}

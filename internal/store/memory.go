package store

import (
	"context"
	"sync"
	"time"

	"github.com/albapepper/scoracle-scout/internal/match"
)

// Memory is an in-process store. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	records  []match.Record
	index    map[string]int
	revision int64
	now      func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		index: make(map[string]int),
		now:   time.Now,
	}
}

func (m *Memory) Snapshot(ctx context.Context) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]match.Record, len(m.records))
	copy(records, m.records)
	return Snapshot{Revision: m.revision, Records: records}, nil
}

func (m *Memory) Revision(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision, nil
}

func (m *Memory) Get(ctx context.Context, id string) (match.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		return match.Record{}, ErrNotFound
	}
	return m.records[i], nil
}

func (m *Memory) Upsert(ctx context.Context, r match.Record) (match.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r = Prepare(r, m.now())
	m.put(r)
	m.revision++
	return r, nil
}

func (m *Memory) Merge(ctx context.Context, records []match.Record) (MergeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]int64, len(m.records))
	for _, r := range m.records {
		existing[r.ID] = r.Timestamp
	}
	ops, result := planMerge(existing, records, m.now())
	for _, op := range ops {
		m.put(op.record)
	}
	m.revision++
	return result, nil
}

func (m *Memory) Clear(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.records)
	m.records = nil
	m.index = make(map[string]int)
	m.revision++
	return n, nil
}

func (m *Memory) Close() error { return nil }

// put replaces in place or appends; callers hold the write lock.
func (m *Memory) put(r match.Record) {
	if i, ok := m.index[r.ID]; ok {
		m.records[i] = r
		return
	}
	m.index[r.ID] = len(m.records)
	m.records = append(m.records, r)
}

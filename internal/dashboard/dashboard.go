// Package dashboard runs the full query pipeline over a record snapshot:
// aggregate, search, rank, select and chart.
//
// A Query is plain serializable data, so the same leaderboard can be
// reproduced from an HTTP body, a CLI invocation or a saved link.
package dashboard

import (
	"errors"
	"math"
	"strings"
	"sync"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/rank"
	"github.com/albapepper/scoracle-scout/internal/scoring"
	"github.com/albapepper/scoracle-scout/internal/store"
	"github.com/albapepper/scoracle-scout/internal/view"
)

// ErrTeamNotFound is returned when a team has no included records.
var ErrTeamNotFound = errors.New("team not found")

// memoLimit bounds the number of cached aggregation passes.
const memoLimit = 8

// Query is the complete leaderboard state.
type Query struct {
	Filter    aggregate.Filter `json:"filter"`
	Sort      rank.Sort        `json:"sort"`
	Selection []string         `json:"selection"`
}

// Overview is the headline panel: how much has been scouted under the filter.
type Overview struct {
	RecordsScouted int     `json:"recordsScouted"`
	TeamsScouted   int     `json:"teamsScouted"`
	AvgTotalPoints float64 `json:"avgTotalPoints"`
}

// Board is the result of one pipeline run.
type Board struct {
	Revision   int64                   `json:"revision"`
	Query      Query                   `json:"query"`
	Overview   Overview                `json:"overview"`
	Teams      []aggregate.TeamSummary `json:"teams"`
	Selected   []aggregate.TeamSummary `json:"selected"`
	Comparison []view.ComparisonPoint  `json:"comparison"`
}

// TeamDetail is the drill-down for one team.
type TeamDetail struct {
	Summary aggregate.TeamSummary `json:"summary"`
	Profile []view.ProfilePoint   `json:"profile"`
	Trend   []view.TrendPoint     `json:"trend"`
}

type memoKey struct {
	revision       int64
	excludeDefense bool
}

// Engine evaluates queries against snapshots with a fixed point table.
// It is safe for concurrent use.
type Engine struct {
	table scoring.PointTable

	mu       sync.Mutex
	memo     map[memoKey][]aggregate.TeamSummary
	computed int
}

// New creates an engine scoring with table.
func New(table scoring.PointTable) *Engine {
	return &Engine{
		table: table,
		memo:  make(map[memoKey][]aggregate.TeamSummary),
	}
}

// Table returns the point table in use.
func (e *Engine) Table() scoring.PointTable {
	return e.table
}

// Normalize fills defaults and applies the selection cap.
func (q Query) Normalize() Query {
	if q.Sort.Key == "" {
		q.Sort = rank.Default()
	}
	if q.Sort.Direction == "" {
		q.Sort.Direction = rank.Descending
	}
	q.Selection = view.NewSelection(q.Selection...).Teams()
	return q
}

// Board runs q against snap. The only error is an invalid sort.
func (e *Engine) Board(snap store.Snapshot, q Query) (Board, error) {
	q = q.Normalize()

	teams := aggregate.Search(e.summaries(snap, q.Filter), q.Filter.Search)
	if err := rank.Rank(teams, q.Sort); err != nil {
		return Board{}, err
	}
	selected := view.NewSelection(q.Selection...).Pick(teams)

	return Board{
		Revision:   snap.Revision,
		Query:      q,
		Overview:   e.overview(snap.Records, q.Filter),
		Teams:      teams,
		Selected:   selected,
		Comparison: view.Comparison(selected),
	}, nil
}

// Team returns the detail view for team under the filter's record predicate.
// The filter's search term is ignored.
func (e *Engine) Team(snap store.Snapshot, team string, f aggregate.Filter) (TeamDetail, error) {
	team = strings.TrimSpace(team)
	for _, s := range e.summaries(snap, f) {
		if s.Team != team {
			continue
		}
		return TeamDetail{
			Summary: s,
			Profile: view.Profile(s),
			Trend:   view.Trend(view.TeamRecords(snap.Records, team, f), e.table),
		}, nil
	}
	return TeamDetail{}, ErrTeamNotFound
}

// summaries returns a private copy of the unsearched aggregation pass,
// reusing a previous pass for the same revision and record predicate.
// Revision zero marks a snapshot without versioning and is never memoized.
func (e *Engine) summaries(snap store.Snapshot, f aggregate.Filter) []aggregate.TeamSummary {
	if snap.Revision == 0 {
		return aggregate.Summarize(snap.Records, f, e.table)
	}

	key := memoKey{revision: snap.Revision, excludeDefense: f.ExcludeDefense}

	e.mu.Lock()
	cached, ok := e.memo[key]
	e.mu.Unlock()
	if !ok {
		cached = aggregate.Summarize(snap.Records, f, e.table)
		e.remember(key, cached)
	}
	return append([]aggregate.TeamSummary(nil), cached...)
}

func (e *Engine) remember(key memoKey, summaries []aggregate.TeamSummary) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.computed++
	for k := range e.memo {
		if k.revision < key.revision || len(e.memo) >= memoLimit {
			delete(e.memo, k)
		}
	}
	e.memo[key] = summaries
}

func (e *Engine) overview(records []match.Record, f aggregate.Filter) Overview {
	var o Overview
	teams := make(map[string]struct{})
	total := 0
	for _, r := range records {
		if !f.Include(r) || !strings.Contains(r.Team(), f.Search) {
			continue
		}
		o.RecordsScouted++
		teams[r.Team()] = struct{}{}
		total += scoring.TotalPoints(r, e.table)
	}
	o.TeamsScouted = len(teams)
	if o.RecordsScouted > 0 {
		o.AvgTotalPoints = math.Round(float64(total)/float64(o.RecordsScouted)*10) / 10
	}
	return o
}

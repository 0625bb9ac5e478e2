package dashboard

import (
	"errors"
	"testing"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/rank"
	"github.com/albapepper/scoracle-scout/internal/scoring"
	"github.com/albapepper/scoracle-scout/internal/store"
)

func record(id, team string, teleopL4 int, defense bool) match.Record {
	var r match.Record
	r.ID = id
	r.Match.Type = match.Qualification
	r.Match.TeamNumber = team
	r.Teleop.Coral.L4 = teleopL4
	r.Teleop.PlayedDefense = defense
	return r
}

func snapshot(revision int64) store.Snapshot {
	return store.Snapshot{
		Revision: revision,
		Records: []match.Record{
			record("1", "118", 5, false),
			record("2", "254", 10, false),
			record("3", "118", 7, true),
			record("4", "1114", 1, false),
			record("5", "", 50, false),
		},
	}
}

func TestBoard(t *testing.T) {
	e := New(scoring.DefaultPointTable())

	b, err := e.Board(snapshot(1), Query{Selection: []string{"1114", "254"}})
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if b.Query.Sort != rank.Default() {
		t.Errorf("sort not defaulted: %+v", b.Query.Sort)
	}

	var order []string
	for _, s := range b.Teams {
		order = append(order, s.Team)
	}
	// teleop L4 is worth 4: 254 = 40, 118 = 24, 1114 = 4
	if len(order) != 3 || order[0] != "254" || order[1] != "118" || order[2] != "1114" {
		t.Fatalf("ranked order got %v", order)
	}

	if len(b.Selected) != 2 || b.Selected[0].Team != "254" || b.Selected[1].Team != "1114" {
		t.Errorf("selected got %+v", b.Selected)
	}
	if len(b.Comparison) != 2 || b.Comparison[0].Total != 40 {
		t.Errorf("comparison got %+v", b.Comparison)
	}

	want := Overview{RecordsScouted: 4, TeamsScouted: 3, AvgTotalPoints: 23}
	if b.Overview != want {
		t.Errorf("overview got %+v want %+v", b.Overview, want)
	}
}

func TestBoardFilterAndSearch(t *testing.T) {
	e := New(scoring.DefaultPointTable())

	b, err := e.Board(snapshot(1), Query{Filter: aggregate.Filter{ExcludeDefense: true, Search: "11"}})
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(b.Teams) != 2 {
		t.Fatalf("teams got %d want 2", len(b.Teams))
	}
	for _, s := range b.Teams {
		if s.Team == "118" && s.MatchesIncluded != 1 {
			t.Errorf("118 matches got %d want 1", s.MatchesIncluded)
		}
	}
	if b.Overview.RecordsScouted != 2 {
		t.Errorf("overview records got %d want 2", b.Overview.RecordsScouted)
	}
}

func TestBoardUnknownSort(t *testing.T) {
	e := New(scoring.DefaultPointTable())
	_, err := e.Board(snapshot(1), Query{Sort: rank.Sort{Key: "nope"}})
	if !errors.Is(err, rank.ErrUnknownSortKey) {
		t.Fatalf("got %v want ErrUnknownSortKey", err)
	}
}

func TestMemo(t *testing.T) {
	e := New(scoring.DefaultPointTable())
	snap := snapshot(3)

	for i := 0; i < 3; i++ {
		if _, err := e.Board(snap, Query{Filter: aggregate.Filter{Search: "1"}}); err != nil {
			t.Fatalf("Board: %v", err)
		}
	}
	if e.computed != 1 {
		t.Errorf("same revision computed %d times want 1", e.computed)
	}

	if _, err := e.Board(snap, Query{Filter: aggregate.Filter{ExcludeDefense: true}}); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if e.computed != 2 {
		t.Errorf("filter change computed %d times want 2", e.computed)
	}

	// A newer revision with different records must not see the cached pass.
	next := store.Snapshot{Revision: 4, Records: []match.Record{record("9", "9999", 2, false)}}
	b, err := e.Board(next, Query{})
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(b.Teams) != 1 || b.Teams[0].Team != "9999" {
		t.Errorf("stale teams after revision change: %+v", b.Teams)
	}
}

func TestMemoResultsAreIndependent(t *testing.T) {
	e := New(scoring.DefaultPointTable())
	snap := snapshot(1)

	first, _ := e.Board(snap, Query{Sort: rank.Sort{Key: rank.KeyTeam, Direction: rank.Ascending}})
	second, _ := e.Board(snap, Query{})

	if first.Teams[0].Team != "118" {
		t.Errorf("team sort got first %s want 118", first.Teams[0].Team)
	}
	if second.Teams[0].Team != "254" {
		t.Errorf("ranking the memoized pass leaked between boards: first %s", second.Teams[0].Team)
	}
	if first.Teams[0].Team != "118" {
		t.Errorf("earlier board was reordered")
	}
}

func TestUnversionedSnapshotsAreNotMemoized(t *testing.T) {
	e := New(scoring.DefaultPointTable())
	a := store.Snapshot{Records: []match.Record{record("1", "1", 1, false)}}
	b := store.Snapshot{Records: []match.Record{record("1", "2", 1, false)}}

	ba, _ := e.Board(a, Query{})
	bb, _ := e.Board(b, Query{})
	if ba.Teams[0].Team != "1" || bb.Teams[0].Team != "2" {
		t.Errorf("revision zero reused a pass: %s, %s", ba.Teams[0].Team, bb.Teams[0].Team)
	}
}

func TestSelectionCapInQuery(t *testing.T) {
	q := Query{Selection: []string{"1", "2", "3", "4", "5", "6", "7"}}.Normalize()
	if len(q.Selection) != 6 {
		t.Errorf("selection got %v want 6 teams", q.Selection)
	}
}

func TestTeam(t *testing.T) {
	e := New(scoring.DefaultPointTable())

	d, err := e.Team(snapshot(1), "118", aggregate.Filter{})
	if err != nil {
		t.Fatalf("Team: %v", err)
	}
	if d.Summary.MatchesIncluded != 2 || len(d.Trend) != 2 || len(d.Profile) != 5 {
		t.Errorf("detail got summary=%+v trend=%d profile=%d", d.Summary, len(d.Trend), len(d.Profile))
	}
	if d.Trend[0].Points != 20 || d.Trend[1].Points != 28 {
		t.Errorf("trend got %+v", d.Trend)
	}

	excluded, err := e.Team(snapshot(1), "118", aggregate.Filter{ExcludeDefense: true})
	if err != nil {
		t.Fatalf("Team: %v", err)
	}
	if len(excluded.Trend) != 1 {
		t.Errorf("defense record should be excluded from trend")
	}

	if _, err := e.Team(snapshot(1), "4242", aggregate.Filter{}); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("got %v want ErrTeamNotFound", err)
	}
}

package view

import (
	"slices"
	"testing"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/scoring"
)

func TestSelectionCap(t *testing.T) {
	s := NewSelection("1", "2", "3", "4", "5", "6")
	if s.Len() != MaxSelected {
		t.Fatalf("Len got %d want %d", s.Len(), MaxSelected)
	}

	next := s.Add("7")
	if !slices.Equal(next.Teams(), s.Teams()) {
		t.Errorf("7th add changed selection: %v", next.Teams())
	}
	if next = s.Toggle("7"); next.Contains("7") {
		t.Errorf("7th toggle selected team")
	}

	freed := s.Toggle("3")
	if freed.Contains("3") || freed.Len() != 5 {
		t.Errorf("toggle off got %v", freed.Teams())
	}
	if !s.Contains("3") {
		t.Errorf("Toggle modified receiver")
	}
	if got := freed.Toggle("7").Teams(); !slices.Equal(got, []string{"1", "2", "4", "5", "6", "7"}) {
		t.Errorf("toggle on got %v", got)
	}
}

func TestNewSelectionDropsInvalid(t *testing.T) {
	got := NewSelection("", "118", "118", "254").Teams()
	if !slices.Equal(got, []string{"118", "254"}) {
		t.Errorf("got %v want [118 254]", got)
	}
}

func TestPickFollowsRankedOrder(t *testing.T) {
	ranked := []aggregate.TeamSummary{{Team: "254"}, {Team: "118"}, {Team: "1114"}, {Team: "33"}}
	got := NewSelection("33", "254", "9999").Pick(ranked)
	if len(got) != 2 || got[0].Team != "254" || got[1].Team != "33" {
		t.Errorf("Pick got %+v", got)
	}
}

func TestComparison(t *testing.T) {
	got := Comparison([]aggregate.TeamSummary{
		{Team: "118", AvgAutoPoints: 10, AvgTeleopPoints: 20, AvgTotalPoints: 30},
	})
	want := ComparisonPoint{Team: "118", Auto: 10, Teleop: 20, Total: 30}
	if len(got) != 1 || got[0] != want {
		t.Errorf("Comparison got %+v want %+v", got, want)
	}
}

func TestProfile(t *testing.T) {
	s := aggregate.TeamSummary{
		AvgAutoPoints:    15,
		AvgTeleopPoints:  90,
		AvgAutoL4:        1,
		AvgTeleopL4:      2,
		AvgAlgae:         2,
		DefenseFrequency: 0.25,
	}
	got := Profile(s)
	want := map[string]float64{"Auto": 50, "Teleop": 150, "L4": 30, "Algae": 25, "Defense": 25}
	if len(got) != len(want) {
		t.Fatalf("Profile got %d axes want %d", len(got), len(want))
	}
	for _, p := range got {
		if p.Value != want[p.Metric] {
			t.Errorf("%s got %v want %v", p.Metric, p.Value, want[p.Metric])
		}
	}
}

func TestTrend(t *testing.T) {
	table := scoring.DefaultPointTable()
	var a, b match.Record
	a.ID, a.Match.Type, a.Match.Number = "a", match.Qualification, 12
	a.Auto.Coral.L4 = 1
	a.Auto.Coral.L1 = 4 // not counted by QuickPoints
	b.ID, b.Match.Type, b.Match.Number = "b", match.Practice, 2
	b.Teleop.Coral.L3 = 2

	got := Trend([]match.Record{a, b}, table)
	if len(got) != 2 {
		t.Fatalf("Trend got %d points want 2", len(got))
	}
	if got[0].Label != "Q12" || got[0].Points != 6 {
		t.Errorf("first point got %+v", got[0])
	}
	if got[1].Label != "P2" || got[1].Points != 6 {
		t.Errorf("second point got %+v", got[1])
	}
}

func TestTeamRecords(t *testing.T) {
	mk := func(id, team string, defense bool) match.Record {
		var r match.Record
		r.ID = id
		r.Match.TeamNumber = team
		r.Teleop.PlayedDefense = defense
		return r
	}
	records := []match.Record{mk("1", "118", false), mk("2", "254", false), mk("3", "118", true), mk("4", " 118", false), mk("5", "118", false)}

	got := TeamRecords(records, "118", aggregate.Filter{ExcludeDefense: true})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "5" {
		t.Errorf("TeamRecords got %+v", got)
	}
	if padded := TeamRecords(records, " 118", aggregate.Filter{}); len(padded) != 1 || padded[0].ID != "4" {
		t.Errorf("TeamRecords for %q got %+v", " 118", padded)
	}
}

package match

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDecodePartialRecord(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"id":"x","match":{"teamNumber":" 118 ","number":4}}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Team() != " 118 " {
		t.Errorf("Team got %q want the untrimmed identity", r.Team())
	}
	if r.Auto.Coral.Total() != 0 || r.Teleop.Algae.Total() != 0 {
		t.Errorf("missing sections should decode to zero")
	}
	if r.Endgame.DefenseLevel != nil {
		t.Errorf("unset rating should stay nil")
	}
	if r.Label() != "Q4" {
		t.Errorf("Label got %q want Q4", r.Label())
	}
}

func TestTotalsIgnoreNegativeAndMissed(t *testing.T) {
	c := Coral{L4: 2, L3: -1, L2: 1, L1: 0, MissedL4: 9}
	if got := c.Total(); got != 3 {
		t.Errorf("Coral.Total got %d want 3", got)
	}
	a := Algae{Processor: 1, Net: -4, MissedNet: 3}
	if got := a.Total(); got != 1 {
		t.Errorf("Algae.Total got %d want 1", got)
	}
}

func TestWithUpdatesDoNotShareState(t *testing.T) {
	base := New("a", time.UnixMilli(1000))
	level := 3
	end := Endgame{EndState: EndDeep, DefenseLevel: &level}

	updated := base.WithEndgame(end)
	level = 5

	if base.Endgame.EndState != EndNone {
		t.Errorf("receiver was modified")
	}
	if *updated.Endgame.DefenseLevel != 3 {
		t.Errorf("rating pointer shared with argument: got %d want 3", *updated.Endgame.DefenseLevel)
	}

	info := base.Match
	info.TeamNumber = "254"
	if got := base.WithInfo(info).Team(); got != "254" {
		t.Errorf("WithInfo team got %q", got)
	}
	if base.Team() != "" {
		t.Errorf("WithInfo modified receiver")
	}

	auto := Auto{CrossedLine: true}
	if !base.WithAuto(auto).Auto.CrossedLine || base.Auto.CrossedLine {
		t.Errorf("WithAuto did not copy correctly")
	}
	teleop := Teleop{PlayedDefense: true}
	if !base.WithTeleop(teleop).Teleop.PlayedDefense || base.Teleop.PlayedDefense {
		t.Errorf("WithTeleop did not copy correctly")
	}
}

func TestValidate(t *testing.T) {
	bad := 7
	tests := []struct {
		name   string
		mutate func(*Record)
		want   string
	}{
		{"valid", func(r *Record) {}, ""},
		{"match type", func(r *Record) { r.Match.Type = "X" }, "match.type"},
		{"alliance", func(r *Record) { r.Match.Alliance = "G" }, "match.alliance"},
		{"start position", func(r *Record) { r.Match.StartingPosition = 6 }, "startingPosition"},
		{"end state", func(r *Record) { r.Endgame.EndState = 4 }, "endState"},
		{"rating", func(r *Record) { r.Endgame.DrivingLevel = &bad }, "drivingLevel"},
		{"negative count", func(r *Record) { r.Teleop.Coral.L2 = -1 }, "non-negative"},
		{"negative fouls", func(r *Record) { r.Endgame.Fouls = -1 }, "foul"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("id", time.UnixMilli(1))
			tt.mutate(&r)
			err := r.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate got %v want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate got %v want error containing %q", err, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	records := []Record{
		{ID: "1", Match: Info{TeamNumber: "118", Number: 3}},
		{ID: "2", Match: Info{TeamNumber: "254", Number: 11}},
		{ID: "3", Match: Info{TeamNumber: "1114", Number: 25}},
	}
	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"1", "2", "3"}},
		{"11", []string{"1", "2", "3"}},
		{"25", []string{"2", "3"}},
		{"3", []string{"1"}},
		{"999", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Search(records, tt.term)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) got %d records want %d", tt.term, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("Search(%q)[%d] got %s want %s", tt.term, i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

package rank

import (
	"errors"
	"slices"
	"testing"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
)

func teams(summaries []aggregate.TeamSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Team)
	}
	return out
}

func TestToggleReversesOrder(t *testing.T) {
	summaries := []aggregate.TeamSummary{
		{Team: "118", AvgTotalPoints: 40},
		{Team: "254", AvgTotalPoints: 55.5},
		{Team: "1114", AvgTotalPoints: 12},
	}

	s := Default()
	if err := Rank(summaries, s); err != nil {
		t.Fatalf("Rank: %v", err)
	}
	desc := teams(summaries)
	if !slices.Equal(desc, []string{"254", "118", "1114"}) {
		t.Fatalf("descending got %v", desc)
	}

	s = s.Toggle(DefaultKey)
	if s.Direction != Ascending {
		t.Fatalf("toggle got %s want asc", s.Direction)
	}
	if err := Rank(summaries, s); err != nil {
		t.Fatalf("Rank: %v", err)
	}
	asc := teams(summaries)
	slices.Reverse(desc)
	if !slices.Equal(asc, desc) {
		t.Errorf("ascending got %v want %v", asc, desc)
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name string
		from Sort
		key  string
		want Sort
	}{
		{"same key from asc", Sort{Key: "avgAutoPoints", Direction: Ascending}, "avgAutoPoints", Sort{Key: "avgAutoPoints", Direction: Descending}},
		{"same key from desc", Sort{Key: "avgAutoPoints", Direction: Descending}, "avgAutoPoints", Sort{Key: "avgAutoPoints", Direction: Ascending}},
		{"same key from unset direction", Sort{Key: "avgAutoPoints"}, "avgAutoPoints", Sort{Key: "avgAutoPoints", Direction: Ascending}},
		{"new key", Sort{Key: "avgAutoPoints", Direction: Ascending}, "climbRate", Sort{Key: "climbRate", Direction: Descending}},
		{"new key from zero value", Sort{}, KeyTeam, Sort{Key: KeyTeam, Direction: Descending}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Toggle(tt.key); got != tt.want {
				t.Errorf("Toggle(%q) got %+v want %+v", tt.key, got, tt.want)
			}
		})
	}
}

func TestToggleUnsetDirectionFlipsOrder(t *testing.T) {
	summaries := []aggregate.TeamSummary{
		{Team: "118", AvgTotalPoints: 40},
		{Team: "254", AvgTotalPoints: 55.5},
	}
	s := Sort{Key: DefaultKey}
	if err := Rank(summaries, s); err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if got := teams(summaries); !slices.Equal(got, []string{"254", "118"}) {
		t.Fatalf("unset direction got %v want descending", got)
	}
	if err := Rank(summaries, s.Toggle(DefaultKey)); err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if got := teams(summaries); !slices.Equal(got, []string{"118", "254"}) {
		t.Errorf("after toggle got %v want ascending", got)
	}
}

func TestStable(t *testing.T) {
	for _, dir := range []Direction{Ascending, Descending} {
		t.Run(string(dir), func(t *testing.T) {
			summaries := []aggregate.TeamSummary{
				{Team: "a", AvgAutoPoints: 5},
				{Team: "b", AvgAutoPoints: 7},
				{Team: "c", AvgAutoPoints: 5},
				{Team: "d", AvgAutoPoints: 5},
			}
			if err := Rank(summaries, Sort{Key: "avgAutoPoints", Direction: dir}); err != nil {
				t.Fatalf("Rank: %v", err)
			}
			var tied []string
			for _, s := range summaries {
				if s.AvgAutoPoints == 5 {
					tied = append(tied, s.Team)
				}
			}
			if !slices.Equal(tied, []string{"a", "c", "d"}) {
				t.Errorf("tied order got %v want [a c d]", tied)
			}
		})
	}
}

func TestUnknownKey(t *testing.T) {
	err := Rank([]aggregate.TeamSummary{{Team: "1"}}, Sort{Key: "avgBananas"})
	if !errors.Is(err, ErrUnknownSortKey) {
		t.Fatalf("got %v want ErrUnknownSortKey", err)
	}
	if err := Rank(nil, Sort{Key: KeyTeam, Direction: "sideways"}); err == nil {
		t.Fatal("expected error for invalid direction")
	}
}

func TestKeysAllResolve(t *testing.T) {
	keys := Keys()
	if !slices.IsSorted(keys) {
		t.Errorf("Keys not sorted: %v", keys)
	}
	for _, k := range keys {
		if _, err := Comparator(k); err != nil {
			t.Errorf("Comparator(%q): %v", k, err)
		}
	}
}

func TestCompareTeams(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"25", "118", -1},
		{"118", "25", 1},
		{"118", "118", 0},
		{"0118", "118", -1},
		{"99999999999999999999999", "100000000000000000000000", -1},
		{"9999", "B-team", -1},
		{"alpha", "9999", 1},
		{"alpha", "beta", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := CompareTeams(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareTeams(%q, %q) got %d want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTeamOrderIsTotal(t *testing.T) {
	ids := []string{"118", "25", "0118", "1114", "254", "frc118", "A", "a", "007", "7", "", "10000000000000000000000"}
	for _, a := range ids {
		for _, b := range ids {
			ab, ba := CompareTeams(a, b), CompareTeams(b, a)
			if a == b {
				if ab != 0 {
					t.Errorf("CompareTeams(%q, %q) got %d want 0", a, b, ab)
				}
				continue
			}
			if ab == 0 || ab != -ba {
				t.Errorf("CompareTeams(%q, %q)=%d, reverse=%d: not a strict order", a, b, ab, ba)
			}
		}
	}

	summaries := make([]aggregate.TeamSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, aggregate.TeamSummary{Team: id})
	}
	if err := Rank(summaries, Sort{Key: KeyTeam, Direction: Ascending}); err != nil {
		t.Fatalf("Rank: %v", err)
	}
	for i := 1; i < len(summaries); i++ {
		if CompareTeams(summaries[i-1].Team, summaries[i].Team) >= 0 {
			t.Errorf("not strictly ascending at %d: %q then %q", i, summaries[i-1].Team, summaries[i].Team)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"": Descending, "DESC": Descending, "asc": Ascending, " Ascending ": Ascending} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) got %s, %v want %s", in, got, err, want)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

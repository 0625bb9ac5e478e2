package view

import "github.com/albapepper/scoracle-scout/internal/aggregate"

// MaxSelected bounds how many teams can be compared at once.
const MaxSelected = 6

// Selection is an ordered set of selected team identities. Methods return a
// new Selection and never modify the receiver.
type Selection struct {
	teams []string
}

// NewSelection builds a selection from teams in order, dropping duplicates,
// empty identities, and anything past MaxSelected.
func NewSelection(teams ...string) Selection {
	var s Selection
	for _, t := range teams {
		s = s.Add(t)
	}
	return s
}

// Teams returns a copy of the selected identities in selection order.
func (s Selection) Teams() []string {
	return append([]string(nil), s.teams...)
}

// Len returns the number of selected teams.
func (s Selection) Len() int {
	return len(s.teams)
}

// Contains reports whether team is selected.
func (s Selection) Contains(team string) bool {
	for _, t := range s.teams {
		if t == team {
			return true
		}
	}
	return false
}

// Add selects team. Adding beyond MaxSelected, an empty identity, or an
// already selected team is a no-op.
func (s Selection) Add(team string) Selection {
	if team == "" || s.Contains(team) || len(s.teams) >= MaxSelected {
		return s
	}
	next := make([]string, len(s.teams), len(s.teams)+1)
	copy(next, s.teams)
	return Selection{teams: append(next, team)}
}

// Remove deselects team.
func (s Selection) Remove(team string) Selection {
	next := make([]string, 0, len(s.teams))
	for _, t := range s.teams {
		if t != team {
			next = append(next, t)
		}
	}
	return Selection{teams: next}
}

// Toggle removes team when selected, otherwise adds it (subject to the cap).
func (s Selection) Toggle(team string) Selection {
	if s.Contains(team) {
		return s.Remove(team)
	}
	return s.Add(team)
}

// Pick returns the selected summaries in the order they appear in ranked.
// Selected teams absent from ranked are skipped.
func (s Selection) Pick(ranked []aggregate.TeamSummary) []aggregate.TeamSummary {
	out := make([]aggregate.TeamSummary, 0, len(s.teams))
	for _, summary := range ranked {
		if s.Contains(summary.Team) {
			out = append(out, summary)
		}
	}
	return out
}

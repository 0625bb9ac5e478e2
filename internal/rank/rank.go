// Package rank orders team summaries by a caller-selected key.
package rank

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
)

// ErrUnknownSortKey is returned when a sort key names no summary field.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Direction is the sort direction.
type Direction string

const (
	Descending Direction = "desc"
	Ascending  Direction = "asc"
)

// KeyTeam sorts by team identity.
const KeyTeam = "team"

// DefaultKey is the leaderboard's initial sort key.
const DefaultKey = "avgTotalPoints"

// Sort is the serializable sort state.
type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Default returns the initial leaderboard sort: best average total first.
func Default() Sort {
	return Sort{Key: DefaultKey, Direction: Descending}
}

// Toggle returns the state after the user selects key: the active key flips
// direction, any other key starts descending. An unset direction counts as
// descending, as in Rank.
func (s Sort) Toggle(key string) Sort {
	if key == s.Key && s.direction() == Descending {
		return Sort{Key: key, Direction: Ascending}
	}
	return Sort{Key: key, Direction: Descending}
}

func (s Sort) direction() Direction {
	if s.Direction == "" {
		return Descending
	}
	return s.Direction
}

// ParseDirection accepts "asc"/"desc" (any case); empty means Descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q", s)
	}
}

// numeric maps every numeric sort key to its field accessor.
var numeric = map[string]func(aggregate.TeamSummary) float64{
	"matchesIncluded":    func(s aggregate.TeamSummary) float64 { return float64(s.MatchesIncluded) },
	"avgTotalPoints":     func(s aggregate.TeamSummary) float64 { return s.AvgTotalPoints },
	"avgAutoPoints":      func(s aggregate.TeamSummary) float64 { return s.AvgAutoPoints },
	"avgTeleopPoints":    func(s aggregate.TeamSummary) float64 { return s.AvgTeleopPoints },
	"avgAutoL4":          func(s aggregate.TeamSummary) float64 { return s.AvgAutoL4 },
	"avgAutoL3":          func(s aggregate.TeamSummary) float64 { return s.AvgAutoL3 },
	"avgAutoL2":          func(s aggregate.TeamSummary) float64 { return s.AvgAutoL2 },
	"avgAutoL1":          func(s aggregate.TeamSummary) float64 { return s.AvgAutoL1 },
	"avgAutoProcessor":   func(s aggregate.TeamSummary) float64 { return s.AvgAutoProcessor },
	"avgAutoNet":         func(s aggregate.TeamSummary) float64 { return s.AvgAutoNet },
	"avgTeleopL4":        func(s aggregate.TeamSummary) float64 { return s.AvgTeleopL4 },
	"avgTeleopL3":        func(s aggregate.TeamSummary) float64 { return s.AvgTeleopL3 },
	"avgTeleopL2":        func(s aggregate.TeamSummary) float64 { return s.AvgTeleopL2 },
	"avgTeleopL1":        func(s aggregate.TeamSummary) float64 { return s.AvgTeleopL1 },
	"avgTeleopProcessor": func(s aggregate.TeamSummary) float64 { return s.AvgTeleopProcessor },
	"avgTeleopNet":       func(s aggregate.TeamSummary) float64 { return s.AvgTeleopNet },
	"avgCoral":           func(s aggregate.TeamSummary) float64 { return s.AvgCoral },
	"avgAlgae":           func(s aggregate.TeamSummary) float64 { return s.AvgAlgae },
	"avgFouls":           func(s aggregate.TeamSummary) float64 { return s.AvgFouls },
	"peakAutoCoral":      func(s aggregate.TeamSummary) float64 { return float64(s.PeakAutoCoral) },
	"defenseFrequency":   func(s aggregate.TeamSummary) float64 { return s.DefenseFrequency },
	"climbRate":          func(s aggregate.TeamSummary) float64 { return s.ClimbRate },
	"parkRate":           func(s aggregate.TeamSummary) float64 { return s.ParkRate },
	"disabledRate":       func(s aggregate.TeamSummary) float64 { return s.DisabledRate },
}

// Keys returns every accepted sort key in alphabetical order.
func Keys() []string {
	keys := make([]string, 0, len(numeric)+1)
	keys = append(keys, KeyTeam)
	for k := range numeric {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Comparator returns the ascending comparison for key.
func Comparator(key string) (func(a, b aggregate.TeamSummary) int, error) {
	if key == KeyTeam {
		return func(a, b aggregate.TeamSummary) int { return CompareTeams(a.Team, b.Team) }, nil
	}
	get, ok := numeric[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	return func(a, b aggregate.TeamSummary) int { return cmp.Compare(get(a), get(b)) }, nil
}

// Rank sorts summaries in place. The sort is stable: summaries that compare
// equal on the key keep their relative input order in both directions.
func Rank(summaries []aggregate.TeamSummary, s Sort) error {
	compare, err := Comparator(s.Key)
	if err != nil {
		return err
	}
	switch s.direction() {
	case Ascending:
		slices.SortStableFunc(summaries, compare)
	case Descending:
		slices.SortStableFunc(summaries, func(a, b aggregate.TeamSummary) int { return compare(b, a) })
	default:
		return fmt.Errorf("invalid sort direction %q", s.Direction)
	}
	return nil
}

// CompareTeams is a total order over team identities. Identities made only of
// digits compare by numeric value and sort before all other identities;
// numerically equal identities ("0118", "118") fall back to byte order, as do
// non-numeric identities. Two identities compare equal only when identical.
func CompareTeams(a, b string) int {
	an, bn := isDigits(a), isDigits(b)
	switch {
	case an && bn:
		if c := compareDigits(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case an:
		return -1
	case bn:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// compareDigits compares two digit strings by value without parsing, so
// arbitrarily long identities cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

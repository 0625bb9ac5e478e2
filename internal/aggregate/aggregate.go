// Package aggregate turns raw match records into per-team summaries.
//
// Aggregation is a pure function of (records, filter, point table): it never
// mutates its input and can be recomputed at any time.
package aggregate

import (
	"math"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/scoring"
)

// CapabilityThreshold is the per-match average above which a team is tagged as
// able to perform an action.
const CapabilityThreshold = 0.1

// Filter selects which records contribute to the summaries.
type Filter struct {
	ExcludeDefense bool   `json:"excludeDefense"`
	Search         string `json:"search"`
}

// TeamSummary is the derived statistical aggregate for one team. Averages are
// per included match, rounded to one decimal place.
type TeamSummary struct {
	Team            string `json:"team"`
	MatchesIncluded int    `json:"matchesIncluded"`

	AvgTotalPoints  float64 `json:"avgTotalPoints"`
	AvgAutoPoints   float64 `json:"avgAutoPoints"`
	AvgTeleopPoints float64 `json:"avgTeleopPoints"`

	AvgAutoL4        float64 `json:"avgAutoL4"`
	AvgAutoL3        float64 `json:"avgAutoL3"`
	AvgAutoL2        float64 `json:"avgAutoL2"`
	AvgAutoL1        float64 `json:"avgAutoL1"`
	AvgAutoProcessor float64 `json:"avgAutoProcessor"`
	AvgAutoNet       float64 `json:"avgAutoNet"`

	AvgTeleopL4        float64 `json:"avgTeleopL4"`
	AvgTeleopL3        float64 `json:"avgTeleopL3"`
	AvgTeleopL2        float64 `json:"avgTeleopL2"`
	AvgTeleopL1        float64 `json:"avgTeleopL1"`
	AvgTeleopProcessor float64 `json:"avgTeleopProcessor"`
	AvgTeleopNet       float64 `json:"avgTeleopNet"`

	AvgCoral float64 `json:"avgCoral"`
	AvgAlgae float64 `json:"avgAlgae"`
	AvgFouls float64 `json:"avgFouls"`

	PeakAutoCoral    int     `json:"peakAutoCoral"`
	DefenseFrequency float64 `json:"defenseFrequency"`
	ClimbRate        float64 `json:"climbRate"`
	ParkRate         float64 `json:"parkRate"`
	DisabledRate     float64 `json:"disabledRate"`

	Capabilities []string `json:"capabilities"`
}

// sums is the running state of one team bucket.
type sums struct {
	n int

	total, auto, teleop int

	autoL4, autoL3, autoL2, autoL1, autoProc, autoNet             int
	teleopL4, teleopL3, teleopL2, teleopL1, teleopProc, teleopNet int

	fouls int

	peakAutoCoral int
	defense       int
	climbs        int
	parks         int
	disabled      int
}

// Include reports whether a record passes the filter's record-level predicate
// and can be attributed to a team.
func (f Filter) Include(r match.Record) bool {
	if r.Team() == "" {
		return false
	}
	return !(f.ExcludeDefense && r.Teleop.PlayedDefense)
}

// Aggregate groups records by team and computes one summary per team with at
// least one included record. Output order is the order in which each team
// first appears in records; callers rank the result.
func Aggregate(records []match.Record, f Filter, table scoring.PointTable) []TeamSummary {
	return Search(Summarize(records, f, table), f.Search)
}

// Summarize runs the filter, group, reduce and finalize stages without the
// team search step.
func Summarize(records []match.Record, f Filter, table scoring.PointTable) []TeamSummary {
	order := make([]string, 0)
	buckets := make(map[string]*sums)

	for _, r := range records {
		if !f.Include(r) {
			continue
		}
		team := r.Team()
		b, ok := buckets[team]
		if !ok {
			b = &sums{}
			buckets[team] = b
			order = append(order, team)
		}
		b.add(r, table)
	}

	out := make([]TeamSummary, 0, len(order))
	for _, team := range order {
		out = append(out, buckets[team].finalize(team))
	}
	return out
}

// Search keeps summaries whose team identity contains term. Matching is
// case-sensitive; an empty term keeps everything.
func Search(summaries []TeamSummary, term string) []TeamSummary {
	if term == "" {
		return summaries
	}
	out := make([]TeamSummary, 0, len(summaries))
	for _, s := range summaries {
		if strings.Contains(s.Team, term) {
			out = append(out, s)
		}
	}
	return out
}

func (b *sums) add(r match.Record, t scoring.PointTable) {
	c := scoring.Count
	b.n++

	auto := scoring.AutoPoints(r, t)
	teleop := scoring.TeleopPoints(r, t)
	b.auto += auto
	b.teleop += teleop
	b.total += auto + teleop

	ac, aa := r.Auto.Coral, r.Auto.Algae
	b.autoL4 += c(ac.L4)
	b.autoL3 += c(ac.L3)
	b.autoL2 += c(ac.L2)
	b.autoL1 += c(ac.L1)
	b.autoProc += c(aa.Processor)
	b.autoNet += c(aa.Net)

	tc, ta := r.Teleop.Coral, r.Teleop.Algae
	b.teleopL4 += c(tc.L4)
	b.teleopL3 += c(tc.L3)
	b.teleopL2 += c(tc.L2)
	b.teleopL1 += c(tc.L1)
	b.teleopProc += c(ta.Processor)
	b.teleopNet += c(ta.Net)

	b.fouls += c(r.Endgame.Fouls) + c(r.Endgame.TechFouls)

	if autoCoral := ac.Total(); autoCoral > b.peakAutoCoral {
		b.peakAutoCoral = autoCoral
	}
	if r.Teleop.PlayedDefense {
		b.defense++
	}
	switch r.Endgame.EndState {
	case match.EndDeep, match.EndShallow:
		b.climbs++
	case match.EndParked:
		b.parks++
	}
	if r.Endgame.Disabled {
		b.disabled++
	}
}

func (b *sums) finalize(team string) TeamSummary {
	avg := func(sum int) float64 { return round1(float64(sum) / float64(b.n)) }
	rate := func(count int) float64 { return round2(float64(count) / float64(b.n)) }

	s := TeamSummary{
		Team:            team,
		MatchesIncluded: b.n,

		AvgTotalPoints:  avg(b.total),
		AvgAutoPoints:   avg(b.auto),
		AvgTeleopPoints: avg(b.teleop),

		AvgAutoL4:        avg(b.autoL4),
		AvgAutoL3:        avg(b.autoL3),
		AvgAutoL2:        avg(b.autoL2),
		AvgAutoL1:        avg(b.autoL1),
		AvgAutoProcessor: avg(b.autoProc),
		AvgAutoNet:       avg(b.autoNet),

		AvgTeleopL4:        avg(b.teleopL4),
		AvgTeleopL3:        avg(b.teleopL3),
		AvgTeleopL2:        avg(b.teleopL2),
		AvgTeleopL1:        avg(b.teleopL1),
		AvgTeleopProcessor: avg(b.teleopProc),
		AvgTeleopNet:       avg(b.teleopNet),

		AvgCoral: avg(b.autoL4 + b.autoL3 + b.autoL2 + b.autoL1 + b.teleopL4 + b.teleopL3 + b.teleopL2 + b.teleopL1),
		AvgAlgae: avg(b.autoProc + b.autoNet + b.teleopProc + b.teleopNet),
		AvgFouls: avg(b.fouls),

		PeakAutoCoral:    b.peakAutoCoral,
		DefenseFrequency: rate(b.defense),
		ClimbRate:        rate(b.climbs),
		ParkRate:         rate(b.parks),
		DisabledRate:     rate(b.disabled),
	}
	s.Capabilities = b.capabilities()
	return s
}

// capabilities applies the threshold to the per-match average of each action,
// auto and teleop combined. The combined average is taken from the raw sums
// and rounded once, like AvgCoral.
func (b *sums) capabilities() []string {
	avg := func(sum int) float64 { return round1(float64(sum) / float64(b.n)) }
	checks := []struct {
		tag string
		avg float64
	}{
		{"L4", avg(b.autoL4 + b.teleopL4)},
		{"L3", avg(b.autoL3 + b.teleopL3)},
		{"L2", avg(b.autoL2 + b.teleopL2)},
		{"L1", avg(b.autoL1 + b.teleopL1)},
		{"Processor", avg(b.autoProc + b.teleopProc)},
		{"Net", avg(b.autoNet + b.teleopNet)},
	}

	tags := make([]string, 0, len(checks)+1)
	for _, c := range checks {
		if c.avg > CapabilityThreshold {
			tags = append(tags, c.tag)
		}
	}
	if b.peakAutoCoral > 0 {
		tags = append(tags, "Peak Auto "+strconv.Itoa(b.peakAutoCoral))
	}
	return tags
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

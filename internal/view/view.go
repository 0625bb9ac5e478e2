// Package view derives chart-ready series from ranked team summaries and
// from a single team's records.
package view

import (
	"math"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/scoring"
)

// Reference maxima for the profile chart. A team above a ceiling plots above
// 100; values are not clamped.
const (
	RefAutoPoints    = 30.0
	RefTeleopPoints  = 60.0
	RefL4PerMatch    = 10.0
	RefAlgaePerMatch = 8.0
	RefDefense       = 1.0
)

// ComparisonPoint is one team's bar in the grouped auto/teleop chart.
type ComparisonPoint struct {
	Team   string  `json:"team"`
	Auto   float64 `json:"auto"`
	Teleop float64 `json:"teleop"`
	Total  float64 `json:"total"`
}

// ProfilePoint is one axis of the radial profile chart, scaled to 0-100
// against its reference maximum.
type ProfilePoint struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Raw    float64 `json:"raw"`
}

// TrendPoint is one match on a team's trend line.
type TrendPoint struct {
	RecordID  string `json:"recordId"`
	Label     string `json:"label"`
	Timestamp int64  `json:"timestamp"`
	Points    int    `json:"points"`
}

// Comparison reshapes summaries into comparison bars, preserving order.
func Comparison(summaries []aggregate.TeamSummary) []ComparisonPoint {
	out := make([]ComparisonPoint, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ComparisonPoint{
			Team:   s.Team,
			Auto:   s.AvgAutoPoints,
			Teleop: s.AvgTeleopPoints,
			Total:  s.AvgTotalPoints,
		})
	}
	return out
}

// Profile normalizes five headline metrics of a summary for a radial chart.
func Profile(s aggregate.TeamSummary) []ProfilePoint {
	axes := []struct {
		metric string
		raw    float64
		ref    float64
	}{
		{"Auto", s.AvgAutoPoints, RefAutoPoints},
		{"Teleop", s.AvgTeleopPoints, RefTeleopPoints},
		{"L4", s.AvgAutoL4 + s.AvgTeleopL4, RefL4PerMatch},
		{"Algae", s.AvgAlgae, RefAlgaePerMatch},
		{"Defense", s.DefenseFrequency, RefDefense},
	}

	out := make([]ProfilePoint, 0, len(axes))
	for _, a := range axes {
		out = append(out, ProfilePoint{
			Metric: a.metric,
			Value:  math.Round(a.raw/a.ref*1000) / 10,
			Raw:    a.raw,
		})
	}
	return out
}

// Trend produces one point per record in the given order. Points use the
// reduced QuickPoints formula, not TotalPoints.
func Trend(records []match.Record, table scoring.PointTable) []TrendPoint {
	out := make([]TrendPoint, 0, len(records))
	for _, r := range records {
		out = append(out, TrendPoint{
			RecordID:  r.ID,
			Label:     r.Label(),
			Timestamp: r.Timestamp,
			Points:    scoring.QuickPoints(r, table),
		})
	}
	return out
}

// TeamRecords returns the records of one team that pass the aggregation
// filter, in store order.
func TeamRecords(records []match.Record, team string, f aggregate.Filter) []match.Record {
	out := make([]match.Record, 0)
	for _, r := range records {
		if f.Include(r) && r.Team() == team {
			out = append(out, r)
		}
	}
	return out
}

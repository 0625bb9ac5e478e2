// Package scoring converts a match record into point totals using a
// swappable per-season point table.
package scoring

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/albapepper/scoracle-scout/internal/match"
)

// PhasePoints are the point values of each scoring action within one phase.
type PhasePoints struct {
	L4        int `json:"l4"`
	L3        int `json:"l3"`
	L2        int `json:"l2"`
	L1        int `json:"l1"`
	Processor int `json:"processor"`
	Net       int `json:"net"`
}

// PointTable is the full scoring configuration for a season.
type PointTable struct {
	Version   string      `json:"version"`
	Auto      PhasePoints `json:"auto"`
	Teleop    PhasePoints `json:"teleop"`
	LineBonus int         `json:"lineBonus"`
}

// DefaultPointTable returns the 2025 season values.
func DefaultPointTable() PointTable {
	return PointTable{
		Version:   "2025",
		Auto:      PhasePoints{L4: 6, L3: 5, L2: 4, L1: 3, Processor: 6, Net: 4},
		Teleop:    PhasePoints{L4: 4, L3: 3, L2: 2, L1: 2, Processor: 6, Net: 4},
		LineBonus: 3,
	}
}

// LoadPointTable reads a JSON point table from path. Keys absent from the file
// keep their default value. An empty path returns the default table.
func LoadPointTable(path string) (PointTable, error) {
	table := DefaultPointTable()
	if path == "" {
		return table, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return PointTable{}, fmt.Errorf("read point table: %w", err)
	}
	if err := json.Unmarshal(raw, &table); err != nil {
		return PointTable{}, fmt.Errorf("decode point table %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return PointTable{}, err
	}
	return table, nil
}

// Validate rejects negative point values.
func (t PointTable) Validate() error {
	if t.LineBonus < 0 {
		return fmt.Errorf("point table %s: negative line bonus", t.Version)
	}
	for name, p := range map[string]PhasePoints{"auto": t.Auto, "teleop": t.Teleop} {
		if p.L4 < 0 || p.L3 < 0 || p.L2 < 0 || p.L1 < 0 || p.Processor < 0 || p.Net < 0 {
			return fmt.Errorf("point table %s: negative %s value", t.Version, name)
		}
	}
	return nil
}

// AutoPoints scores the autonomous period, including the line-cross bonus.
func AutoPoints(r match.Record, t PointTable) int {
	pts := phasePoints(r.Auto.Coral, r.Auto.Algae, t.Auto)
	if r.Auto.CrossedLine {
		pts += t.LineBonus
	}
	return pts
}

// TeleopPoints scores the driver-controlled period.
func TeleopPoints(r match.Record, t PointTable) int {
	return phasePoints(r.Teleop.Coral, r.Teleop.Algae, t.Teleop)
}

// TotalPoints is AutoPoints + TeleopPoints.
func TotalPoints(r match.Record, t PointTable) int {
	return AutoPoints(r, t) + TeleopPoints(r, t)
}

// QuickPoints is the reduced formula used for per-match trend lines: only the
// two highest coral levels of each phase count. It is intentionally not equal
// to TotalPoints.
func QuickPoints(r match.Record, t PointTable) int {
	return Count(r.Auto.Coral.L4)*t.Auto.L4 + Count(r.Auto.Coral.L3)*t.Auto.L3 +
		Count(r.Teleop.Coral.L4)*t.Teleop.L4 + Count(r.Teleop.Coral.L3)*t.Teleop.L3
}

// Count coerces a raw count to a usable value; negative input reads as zero.
func Count(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func phasePoints(c match.Coral, a match.Algae, p PhasePoints) int {
	return Count(c.L4)*p.L4 +
		Count(c.L3)*p.L3 +
		Count(c.L2)*p.L2 +
		Count(c.L1)*p.L1 +
		Count(a.Processor)*p.Processor +
		Count(a.Net)*p.Net
}

// Package match defines the scouting record captured for one team in one
// competition match. The JSON shape is the exchange format shared with the
// scouting app's file export and QR codes, so field names must not change.
package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Type is the competition stage a match belongs to.
type Type string

const (
	Qualification Type = "Q"
	Practice      Type = "P"
	Elimination   Type = "E"
	Final         Type = "F"
)

// Alliance is the side the observed team played on. Empty means unset.
type Alliance string

const (
	Red        Alliance = "R"
	Blue       Alliance = "B"
	NoAlliance Alliance = ""
)

// End states recorded at the end of the match.
const (
	EndNone    = 0
	EndParked  = 1
	EndDeep    = 2
	EndShallow = 3
)

// Record is one immutable observation of a team's performance in a match.
type Record struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Match     Info    `json:"match"`
	Auto      Auto    `json:"auto"`
	Teleop    Teleop  `json:"teleop"`
	Endgame   Endgame `json:"endgame"`
}

// Info identifies the match and the observed team.
type Info struct {
	Type             Type     `json:"type"`
	Number           int      `json:"number"`
	TeamNumber       string   `json:"teamNumber"`
	Alliance         Alliance `json:"alliance"`
	StartingPosition int      `json:"startingPosition"` // 0 = unset, 1-5
}

// Coral holds primary game piece placements per reef level.
// Missed counters are informational and never score.
type Coral struct {
	L4       int `json:"l4"`
	L3       int `json:"l3"`
	L2       int `json:"l2"`
	L1       int `json:"l1"`
	MissedL4 int `json:"missedL4"`
	MissedL3 int `json:"missedL3"`
	MissedL2 int `json:"missedL2"`
	MissedL1 int `json:"missedL1"`
}

// Total returns the number of scored coral across all levels.
func (c Coral) Total() int {
	return nonNeg(c.L4) + nonNeg(c.L3) + nonNeg(c.L2) + nonNeg(c.L1)
}

// Algae holds secondary game piece scores per target.
type Algae struct {
	Processor       int `json:"processor"`
	Net             int `json:"net"`
	MissedProcessor int `json:"missedProcessor"`
	MissedNet       int `json:"missedNet"`
}

// Total returns the number of scored algae across both targets.
func (a Algae) Total() int {
	return nonNeg(a.Processor) + nonNeg(a.Net)
}

type AlgaePickup struct {
	Reef      bool `json:"reef"`
	Processor bool `json:"processor"`
}

type CoralPickup struct {
	HP     bool `json:"hp"`
	Ground bool `json:"ground"`
}

// Auto is the autonomous period.
type Auto struct {
	CrossedLine          bool        `json:"crossedLine"`
	Mobility             bool        `json:"mobility"`
	StartedWithGamePiece bool        `json:"startedWithGamePiece"`
	Coral                Coral       `json:"coral"`
	Algae                Algae       `json:"algae"`
	AlgaePickup          AlgaePickup `json:"algaePickup"`
	CoralPickup          CoralPickup `json:"coralPickup"`
}

// Teleop is the driver-controlled period.
type Teleop struct {
	Coral         Coral       `json:"coral"`
	Algae         Algae       `json:"algae"`
	PlayedDefense bool        `json:"playedDefense"`
	GotDefended   bool        `json:"gotDefended"`
	AlgaePickup   AlgaePickup `json:"algaePickup"`
	CoralPickup   CoralPickup `json:"coralPickup"`
}

// Endgame holds the final state and the scout's qualitative ratings.
type Endgame struct {
	EndState     int    `json:"endState"`
	DefenseLevel *int   `json:"defenseLevel"` // 1-5, nil when not rated
	DrivingLevel *int   `json:"drivingLevel"` // 1-5, nil when not rated
	Disabled     bool   `json:"disabled"`
	Comments     string `json:"comments"`
	Fouls        int    `json:"fouls"`
	TechFouls    int    `json:"techFouls"`
	YellowCard   bool   `json:"yellowCard"`
	RedCard      bool   `json:"redCard"`
}

// New returns an empty record with the defaults the capture form starts from.
func New(id string, at time.Time) Record {
	return Record{
		ID:        id,
		Timestamp: at.UnixMilli(),
		Match: Info{
			Type:     Qualification,
			Number:   1,
			Alliance: Red,
		},
	}
}

// Team returns the team identity exactly as captured. Identities are compared
// byte for byte, so "118" and "118 " are different teams. Only the empty
// string means the record cannot be attributed to a team.
func (r Record) Team() string {
	return r.Match.TeamNumber
}

// Label returns a short match label such as "Q12".
func (r Record) Label() string {
	t := r.Match.Type
	if t == "" {
		t = Qualification
	}
	return string(t) + strconv.Itoa(r.Match.Number)
}

// Time returns the capture instant.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// WithInfo returns a copy of r with the match info replaced.
func (r Record) WithInfo(info Info) Record {
	r.Match = info
	return r
}

// WithAuto returns a copy of r with the autonomous period replaced.
func (r Record) WithAuto(auto Auto) Record {
	r.Auto = auto
	return r
}

// WithTeleop returns a copy of r with the teleop period replaced.
func (r Record) WithTeleop(teleop Teleop) Record {
	r.Teleop = teleop
	return r
}

// WithEndgame returns a copy of r with the endgame replaced. The rating
// pointers are copied so the result shares no memory with the argument.
func (r Record) WithEndgame(end Endgame) Record {
	end.DefenseLevel = copyInt(end.DefenseLevel)
	end.DrivingLevel = copyInt(end.DrivingLevel)
	r.Endgame = end
	return r
}

// Validate checks the ranges the capture form enforces. Aggregation does not
// call it; malformed records are tolerated there.
func (r Record) Validate() error {
	var problems []string

	switch r.Match.Type {
	case Qualification, Practice, Elimination, Final:
	default:
		problems = append(problems, fmt.Sprintf("match.type %q is not one of Q, P, E, F", r.Match.Type))
	}
	switch r.Match.Alliance {
	case Red, Blue, NoAlliance:
	default:
		problems = append(problems, fmt.Sprintf("match.alliance %q is not one of R, B or empty", r.Match.Alliance))
	}
	if r.Match.Number < 0 {
		problems = append(problems, "match.number must be non-negative")
	}
	if r.Match.StartingPosition < 0 || r.Match.StartingPosition > 5 {
		problems = append(problems, "match.startingPosition must be between 0 and 5")
	}
	if r.Endgame.EndState < EndNone || r.Endgame.EndState > EndShallow {
		problems = append(problems, "endgame.endState must be between 0 and 3")
	}
	if !ratingOK(r.Endgame.DefenseLevel) {
		problems = append(problems, "endgame.defenseLevel must be between 1 and 5")
	}
	if !ratingOK(r.Endgame.DrivingLevel) {
		problems = append(problems, "endgame.drivingLevel must be between 1 and 5")
	}
	if r.Endgame.Fouls < 0 || r.Endgame.TechFouls < 0 {
		problems = append(problems, "endgame foul counters must be non-negative")
	}
	if !countsOK(r.Auto.Coral, r.Auto.Algae) || !countsOK(r.Teleop.Coral, r.Teleop.Algae) {
		problems = append(problems, "scoring counts must be non-negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid record %q: %s", r.ID, strings.Join(problems, "; "))
	}
	return nil
}

// Search keeps records whose team identity or match number contains term.
// Order is preserved. An empty term keeps everything.
func Search(records []Record, term string) []Record {
	if term == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.Match.TeamNumber, term) || strings.Contains(strconv.Itoa(r.Match.Number), term) {
			out = append(out, r)
		}
	}
	return out
}

func ratingOK(v *int) bool {
	return v == nil || (*v >= 1 && *v <= 5)
}

func countsOK(c Coral, a Algae) bool {
	for _, n := range []int{c.L4, c.L3, c.L2, c.L1, c.MissedL4, c.MissedL3, c.MissedL2, c.MissedL1,
		a.Processor, a.Net, a.MissedProcessor, a.MissedNet} {
		if n < 0 {
			return false
		}
	}
	return true
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func nonNeg(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

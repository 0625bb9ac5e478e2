package handler

import (
	"net/http"
	"slices"

	"github.com/albapepper/scoracle-scout/internal/cache"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/rank"
)

// TeamIndexEntry is one known team identity for search autofill.
type TeamIndexEntry struct {
	Team    string `json:"team"`
	Records int    `json:"records"`
}

// GetTeamIndex returns every team identity present in the store.
// @Summary Get team index
// @Description Returns all team identities with their record counts, in team order, for frontend search/autofill. Counts ignore filters.
// @Tags bootstrap
// @Produce json
// @Success 200 {array} TeamIndexEntry
// @Router /team_index [get]
func (h *Handler) GetTeamIndex(w http.ResponseWriter, r *http.Request) {
	rev, err := h.revisionKey(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	h.serveCached(w, r, cache.Key("team_index", rev), cache.TTLBoard, func() (interface{}, error) {
		snap, err := h.store.Snapshot(r.Context())
		if err != nil {
			return nil, err
		}
		return teamIndex(snap.Records), nil
	})
}

func teamIndex(records []match.Record) []TeamIndexEntry {
	counts := make(map[string]int)
	for _, rec := range records {
		if t := rec.Team(); t != "" {
			counts[t]++
		}
	}

	out := make([]TeamIndexEntry, 0, len(counts))
	for t, n := range counts {
		out = append(out, TeamIndexEntry{Team: t, Records: n})
	}
	slices.SortFunc(out, func(a, b TeamIndexEntry) int {
		return rank.CompareTeams(a.Team, b.Team)
	})
	return out
}

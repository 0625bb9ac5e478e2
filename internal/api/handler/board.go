package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-scout/internal/aggregate"
	"github.com/albapepper/scoracle-scout/internal/api/respond"
	"github.com/albapepper/scoracle-scout/internal/cache"
	"github.com/albapepper/scoracle-scout/internal/dashboard"
	"github.com/albapepper/scoracle-scout/internal/rank"
	"github.com/albapepper/scoracle-scout/internal/view"
)

// GetPoints returns the active point table.
// @Summary Get point table
// @Description Returns the per-action point values used for every score.
// @Tags scoring
// @Produce json
// @Success 200 {object} scoring.PointTable
// @Router /points [get]
func (h *Handler) GetPoints(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "points", cache.TTLPoints, func() (interface{}, error) {
		return h.engine.Table(), nil
	})
}

// GetTeams returns the ranked leaderboard.
// @Summary Get leaderboard
// @Description Aggregates all records per team and ranks the summaries.
// @Tags teams
// @Produce json
// @Param sort query string false "Sort key (TeamSummary field name)" default(avgTotalPoints)
// @Param dir query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param exclude_defense query bool false "Drop records where the team played defense"
// @Param search query string false "Team identity substring"
// @Success 200 {object} dashboard.Board
// @Failure 400 {object} respond.ErrorResponse
// @Router /teams [get]
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	rev, err := h.revisionKey(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	key := cache.Key("teams", rev, q.Sort.Key, string(q.Sort.Direction),
		strconv.FormatBool(q.Filter.ExcludeDefense), q.Filter.Search)
	h.serveCached(w, r, key, cache.TTLBoard, func() (interface{}, error) {
		return h.board(r, q)
	})
}

// GetTeam returns one team's summary, profile and trend.
// @Summary Get team detail
// @Description Returns the team's summary, normalized profile and per-match trend.
// @Tags teams
// @Produce json
// @Param team path string true "Team identity"
// @Param exclude_defense query bool false "Drop records where the team played defense"
// @Success 200 {object} dashboard.TeamDetail
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /teams/{team} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team := strings.TrimSpace(chi.URLParam(r, "team"))
	if team == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM", "team path parameter is required")
		return
	}
	excludeDefense, err := queryBool(r, "exclude_defense")
	if err != nil {
		h.writeErr(w, err)
		return
	}
	rev, err := h.revisionKey(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	key := cache.Key("team", rev, team, strconv.FormatBool(excludeDefense))
	h.serveCached(w, r, key, cache.TTLBoard, func() (interface{}, error) {
		snap, err := h.store.Snapshot(r.Context())
		if err != nil {
			return nil, err
		}
		detail, err := h.engine.Team(snap, team, aggregate.Filter{ExcludeDefense: excludeDefense})
		if errors.Is(err, dashboard.ErrTeamNotFound) {
			return nil, notFound("No included records for team " + team)
		}
		return detail, err
	})
}

// CompareResponse is the comparison chart payload.
type CompareResponse struct {
	Selection  []string                `json:"selection"`
	Teams      []aggregate.TeamSummary `json:"teams"`
	Comparison []view.ComparisonPoint  `json:"comparison"`
}

// GetCompare returns side-by-side series for up to six teams.
// @Summary Compare teams
// @Description Returns comparison bars for the selected teams in leaderboard order. Teams past the sixth are ignored.
// @Tags teams
// @Produce json
// @Param teams query string true "Comma-separated team identities"
// @Param exclude_defense query bool false "Drop records where the team played defense"
// @Success 200 {object} CompareResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /compare [get]
func (h *Handler) GetCompare(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("teams")
	if strings.TrimSpace(raw) == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAMS", "teams query parameter is required")
		return
	}
	var teams []string
	for _, t := range strings.Split(raw, ",") {
		teams = append(teams, strings.TrimSpace(t))
	}
	excludeDefense, err := queryBool(r, "exclude_defense")
	if err != nil {
		h.writeErr(w, err)
		return
	}

	q := dashboard.Query{
		Filter:    aggregate.Filter{ExcludeDefense: excludeDefense},
		Selection: view.NewSelection(teams...).Teams(),
	}
	rev, err := h.revisionKey(r)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	key := cache.Key("compare", rev, strconv.FormatBool(excludeDefense), strings.Join(q.Selection, ","))
	h.serveCached(w, r, key, cache.TTLBoard, func() (interface{}, error) {
		b, err := h.board(r, q)
		if err != nil {
			return nil, err
		}
		return CompareResponse{
			Selection:  b.Query.Selection,
			Teams:      b.Selected,
			Comparison: b.Comparison,
		}, nil
	})
}

// PostDashboard evaluates a full serialized query.
// @Summary Evaluate dashboard query
// @Description Runs filter, sort and selection from the request body in one pass.
// @Tags teams
// @Accept json
// @Produce json
// @Param query body dashboard.Query true "Dashboard query"
// @Success 200 {object} dashboard.Board
// @Failure 400 {object} respond.ErrorResponse
// @Router /dashboard [post]
func (h *Handler) PostDashboard(w http.ResponseWriter, r *http.Request) {
	var q dashboard.Query
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&q); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY", "Body must be a dashboard query", err.Error())
		return
	}

	b, err := h.board(r, q)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, b)
}

// board runs the pipeline on a fresh snapshot and maps sort errors to 400.
func (h *Handler) board(r *http.Request, q dashboard.Query) (dashboard.Board, error) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		return dashboard.Board{}, err
	}
	b, err := h.engine.Board(snap, q)
	if err != nil {
		return dashboard.Board{}, badRequest("INVALID_SORT", err.Error())
	}
	return b, nil
}

func parseQuery(r *http.Request) (dashboard.Query, error) {
	v := r.URL.Query()

	dir, err := rank.ParseDirection(v.Get("dir"))
	if err != nil {
		return dashboard.Query{}, badRequest("INVALID_SORT", err.Error())
	}
	key := v.Get("sort")
	if key == "" {
		key = rank.DefaultKey
	}
	if _, err := rank.Comparator(key); err != nil {
		return dashboard.Query{}, badRequest("INVALID_SORT", err.Error())
	}
	excludeDefense, err := queryBool(r, "exclude_defense")
	if err != nil {
		return dashboard.Query{}, err
	}

	return dashboard.Query{
		Filter: aggregate.Filter{ExcludeDefense: excludeDefense, Search: v.Get("search")},
		Sort:   rank.Sort{Key: key, Direction: dir},
	}, nil
}

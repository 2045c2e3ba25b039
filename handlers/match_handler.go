package handlers

import (
	"net/http"
	"strings"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// ListMatches godoc
// @Summary List fixtures ordered by kickoff
// @Tags matches
// @Produce json
// @Param stage query string false "group, r32, r16, qf, sf, 3p or f"
// @Param group query string false "Group letter"
// @Param status query string false "open, locked or finished"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repositories.MatchFilter
	if v := q.Get("stage"); v != "" {
		stage := models.MatchStage(v)
		filter.Stage = &stage
	}
	if v := q.Get("group"); v != "" {
		group := strings.ToUpper(v)
		filter.Group = &group
	}
	if v := q.Get("status"); v != "" {
		status := models.MatchStatus(v)
		filter.Status = &status
	}

	matches, err := h.matchService.ListMatches(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatch godoc
// @Summary Get a fixture
// @Tags matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := h.matchService.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GroupStandings godoc
// @Summary Standings table of one group
// @Tags standings
// @Produce json
// @Param group path string true "Group letter"
// @Success 200 {object} map[string]interface{}
// @Router /standings/{group} [get]
func (h *MatchHandler) GroupStandings(w http.ResponseWriter, r *http.Request) {
	group := strings.ToUpper(chi.URLParam(r, "group"))
	table, err := h.matchService.GroupStandings(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group, "table": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) AllStandings(w http.ResponseWriter, r *http.Request) {
	groups, err := h.matchService.AllStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

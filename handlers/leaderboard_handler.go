package handlers

import (
	"net/http"

	"github.com/Manuelherrera22/Quinela/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

// Leaderboard godoc
// @Summary Ranked users
// @Tags leaderboard
// @Description scope=local restricts the ranking to the caller's country.
// @Produce json
// @Param scope query string false "global (default) or local"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	scope := services.LeaderboardScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = services.ScopeGlobal
	}

	entries, err := h.leaderboardService.Leaderboard(r.Context(), scope, email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scope": scope, "leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

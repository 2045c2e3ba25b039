package handlers

import (
	"net/http"

	"github.com/Manuelherrera22/Quinela/services"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	matchService    services.MatchService
	settingsService services.SettingsService
}

func NewAdminHandler(ms services.MatchService, ss services.SettingsService) *AdminHandler {
	return &AdminHandler{
		matchService:    ms,
		settingsService: ss,
	}
}

// RecordResult godoc
// @Summary Enter or correct a final score
// @Tags admin
// @Description Stores the result and recomputes every user's totals. A failed recompute is reported in "recalculation_error"; the result stays saved.
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body object true "{\"home_score\": 2, \"away_score\": 1}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/matches/{matchID}/result [put]
func (h *AdminHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := input.validate(); len(problems) > 0 {
		failedValidationResponse(w, r, problems)
		return
	}

	outcome, err := h.matchService.RecordResult(r.Context(), chi.URLParam(r, "matchID"), *input.HomeScore, *input.AwayScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := withRecalculation(jsonResponse{"match": outcome.Match}, outcome.Recalculation, outcome.RecalculationErr)
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetChampion godoc
// @Summary Declare or clear the tournament champion
// @Tags admin
// @Accept json
// @Produce json
// @Param body body object true "{\"country\": \"Brazil\"} or {\"country\": null}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/settings/champion [put]
func (h *AdminHandler) SetChampion(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Country *string `json:"country"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var country string
	if input.Country != nil {
		country = *input.Country
	}
	outcome, err := h.settingsService.SetChampion(r.Context(), country)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := withRecalculation(jsonResponse{"settings": outcome.Settings}, outcome.Recalculation, outcome.RecalculationErr)
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/Manuelherrera22/Quinela/services"
	"github.com/go-chi/chi/v5"
)

type PredictionHandler struct {
	predictionService services.PredictionService
}

func NewPredictionHandler(ps services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: ps}
}

// SavePrediction godoc
// @Summary Create or replace the caller's prediction for a match
// @Tags predictions
// @Description Accepted only while the match is open and has not kicked off.
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body object true "{\"home_score\": 2, \"away_score\": 1}"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid score"
// @Failure 404 {object} map[string]string "Unknown match"
// @Failure 409 {object} map[string]string "Predictions closed"
// @Security BearerAuth
// @Router /predictions/{matchID} [put]
func (h *PredictionHandler) SavePrediction(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if problems := input.validate(); len(problems) > 0 {
		failedValidationResponse(w, r, problems)
		return
	}

	prediction, err := h.predictionService.Save(r.Context(), email, chi.URLParam(r, "matchID"), *input.HomeScore, *input.AwayScore)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PredictionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	predictions, err := h.predictionService.ListForUser(r.Context(), email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"predictions": predictions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/services"
)

type SettingsHandler struct {
	settingsService services.SettingsService
	userService     services.UserService
}

func NewSettingsHandler(ss services.SettingsService, us services.UserService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: ss,
		userService:     us,
	}
}

// Get godoc
// @Summary Tournament settings and reference lists
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	lockAt, err := h.userService.ChampionLockTime(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"champion":               settings.Champion,
		"champion_lock_at":       lockAt,
		"countries":              models.Countries,
		"registration_countries": models.RegistrationCountries,
		"groups":                 models.Groups,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

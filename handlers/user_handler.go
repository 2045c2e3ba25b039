package handlers

import (
	"errors"
	"net/http"

	"github.com/Manuelherrera22/Quinela/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{
		userService: us,
	}
}

// Me godoc
// @Summary Current user with up-to-date totals
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(r.Context(), email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SelectChampion godoc
// @Summary Pick the tournament champion
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body object true "{\"country\": \"Brazil\"}"
// @Success 200 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]string
// @Router /users/me/champion [put]
func (h *UserHandler) SelectChampion(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	var input struct {
		Country string `json:"country"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Country == "" {
		failedValidationResponse(w, r, map[string]string{"country": "must be provided"})
		return
	}

	user, err := h.userService.SelectChampion(r.Context(), email, input.Country)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadAvatar godoc
// @Summary Replace the profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "JPEG, PNG, WEBP or GIF up to 5 MB"
// @Success 200 {object} map[string]interface{}
// @Failure 400,503 {object} map[string]string
// @Router /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, services.MaxAvatarBytes+1<<20)
	if err := r.ParseMultipartForm(services.MaxAvatarBytes); err != nil {
		badRequestResponse(w, r, errors.New("request must be a multipart form no larger than 5 MB"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	user, err := h.userService.UploadAvatar(r.Context(), email, file, contentType, header.Size)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": user}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Stats godoc
// @Summary Personal prediction record
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PredictionStats
// @Router /users/me/stats [get]
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	email, ok := currentUserEmail(w, r)
	if !ok {
		return
	}

	stats, err := h.userService.Stats(r.Context(), email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

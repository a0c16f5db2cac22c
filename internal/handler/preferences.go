package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/service"
)

type PreferenceHandler struct {
	goalService *service.GoalService
}

func NewPreferenceHandler(goalService *service.GoalService) *PreferenceHandler {
	return &PreferenceHandler{
		goalService: goalService,
	}
}

// SetView switches between list and grid; unknown modes are ignored
func (h *PreferenceHandler) SetView(w http.ResponseWriter, r *http.Request) {
	view := model.ViewMode(r.FormValue("view"))
	writeJSON(w, r, http.StatusOK, h.goalService.SetView(view))
}

func (h *PreferenceHandler) ToggleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.goalService.ToggleStreakLab())
}

// SetLab switches the lab named in the path on or off from the enabled field
func (h *PreferenceHandler) SetLab(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	enabled, err := strconv.ParseBool(r.FormValue("enabled"))
	if key == "" || err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid lab toggle")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.SetLab(key, enabled))
}

func (h *PreferenceHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	theme := model.Theme(r.FormValue("theme"))
	writeJSON(w, r, http.StatusOK, h.goalService.SetTheme(theme))
}

func (h *PreferenceHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.goalService.ToggleTheme())
}

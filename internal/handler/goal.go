package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/templui/goaltracker/internal/ctxkeys"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/service"
	"github.com/templui/goaltracker/internal/store"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.goalService.Dashboard())
}

// Create adds a goal from the title, type and size form fields.
// Invalid input leaves the collection unchanged.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := store.NewGoal{
		Title: r.FormValue("title"),
		Kind:  model.GoalKind(r.FormValue("type")),
		Size:  r.FormValue("size"),
	}

	writeJSON(w, r, http.StatusOK, h.goalService.AddGoal(in))
}

func (h *GoalHandler) TogglePriority(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.TogglePriority(id))
}

// Delete removes a goal. The client confirms with ?confirm=true.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	dashboard, err := h.goalService.DeleteGoal(id, service.Confirmed(confirmed(r)))
	if errors.Is(err, service.ErrNotConfirmed) {
		slog.Info("goal deletion not confirmed", "goal_id", id, "request_id", ctxkeys.RequestID(r.Context()))
		writeJSON(w, r, http.StatusConflict, dashboard)
		return
	}

	writeJSON(w, r, http.StatusOK, dashboard)
}

func (h *GoalHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.RenameGoal(id, r.FormValue("title")))
}

func (h *GoalHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.StartEdit(id))
}

func (h *GoalHandler) SetEditDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.goalService.SetEditDraft(r.FormValue("draft")))
}

func (h *GoalHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.goalService.SaveEdit())
}

func (h *GoalHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.goalService.CancelEdit())
}

func (h *GoalHandler) Increment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.IncrementCounter(id))
}

// SetValue takes the raw value field; unparsable input stores 0
func (h *GoalHandler) SetValue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.SetProgressValue(id, r.FormValue("value")))
}

func (h *GoalHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Invalid goal id")
		return
	}

	taskID, err := strconv.Atoi(r.PathValue("taskID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid task id")
		return
	}

	writeJSON(w, r, http.StatusOK, h.goalService.ToggleTask(id, taskID))
}

// Reset deletes every goal and restores default preferences. The client confirms with ?confirm=true.
func (h *GoalHandler) Reset(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.goalService.ResetAll(service.Confirmed(confirmed(r)))
	if errors.Is(err, service.ErrNotConfirmed) {
		writeJSON(w, r, http.StatusConflict, dashboard)
		return
	}

	writeJSON(w, r, http.StatusOK, dashboard)
}

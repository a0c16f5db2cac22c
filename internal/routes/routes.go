package routes

import (
	"net/http"

	"github.com/templui/goaltracker/internal/app"
	"github.com/templui/goaltracker/internal/handler"
	"github.com/templui/goaltracker/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	var db handler.Pinger
	if app.DB != nil {
		db = app.DB
	}
	health := handler.NewHealthHandler(db)
	goal := handler.NewGoalHandler(app.GoalService)
	prefs := handler.NewPreferenceHandler(app.GoalService)

	mux := http.NewServeMux()

	// Probes
	mux.HandleFunc("GET /healthz", health.Health)

	// Destructive actions (rate limited, confirmation required)
	rateLimiter := middleware.RateLimitDestructive()

	// ============================================================================
	// GOALS
	// ============================================================================

	mux.HandleFunc("GET /api/goals", goal.Dashboard)
	mux.HandleFunc("POST /api/goals", goal.Create)
	mux.HandleFunc("POST /api/goals/{id}/priority", goal.TogglePriority)
	mux.HandleFunc("DELETE /api/goals/{id}", rateLimiter(goal.Delete))
	mux.HandleFunc("PUT /api/goals/{id}/title", goal.Rename)
	mux.HandleFunc("POST /api/goals/{id}/increment", goal.Increment)
	mux.HandleFunc("PUT /api/goals/{id}/value", goal.SetValue)
	mux.HandleFunc("POST /api/goals/{id}/tasks/{taskID}/toggle", goal.ToggleTask)

	// Edit session
	mux.HandleFunc("POST /api/goals/{id}/edit", goal.StartEdit)
	mux.HandleFunc("PUT /api/edit", goal.SetEditDraft)
	mux.HandleFunc("POST /api/edit/save", goal.SaveEdit)
	mux.HandleFunc("DELETE /api/edit", goal.CancelEdit)

	mux.HandleFunc("POST /api/reset", rateLimiter(goal.Reset))

	// ============================================================================
	// PREFERENCES
	// ============================================================================

	mux.HandleFunc("PUT /api/preferences/view", prefs.SetView)
	mux.HandleFunc("POST /api/preferences/labs/streak", prefs.ToggleStreak)
	mux.HandleFunc("PUT /api/preferences/labs/{key}", prefs.SetLab)
	mux.HandleFunc("PUT /api/preferences/theme", prefs.SetTheme)
	mux.HandleFunc("POST /api/preferences/theme/toggle", prefs.ToggleTheme)

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.RequestLogging,
		middleware.Config(app.Cfg),
	)
}

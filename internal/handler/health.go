package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/goaltracker/internal/ctxkeys"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

// NewHealthHandler reports liveness. db may be nil when storage is not SQL-backed.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health answers with the app name, environment and storage driver from the request config
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		body["app"] = cfg.AppName
		body["env"] = cfg.AppEnv
		body["storage"] = cfg.StorageDriver
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		err := h.db.PingContext(ctx)
		if err != nil {
			slog.Error("health check failed", "error", err, "request_id", ctxkeys.RequestID(r.Context()))
			body["status"] = "unavailable"
			writeJSON(w, r, http.StatusServiceUnavailable, body)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, body)
}

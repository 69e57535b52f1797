package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB and the Redis client adapter.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and, when dependencies are configured,
// readiness of each one.
type HealthHandler struct {
	Deps map[string]Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, dep := range h.Deps {
		if err := dep.PingContext(ctx); err != nil {
			res[name] = "unavailable"
			res["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		res[name] = "ok"
	}

	writeJSON(w, r, status, res)
}

package health

import (
	"context"
	"net/http"

	"corneradvisor/pkg/logger"
	"corneradvisor/pkg/response"
)

const RunningMessage = "The corner advisor server is Running..."

// Pinger reports whether the database is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{Ping: ping}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Message{Message: RunningMessage})
}

// CheckHealth answers 503 when the database does not respond to a ping.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.Ping(r.Context()); err != nil {
		logger.Sugar.Errorf("Database health check failed: %v", err)
		response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	response.OK(w, map[string]string{"status": "healthy"})
}

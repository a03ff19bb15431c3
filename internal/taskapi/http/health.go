package http

import (
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/store"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

// HealthPayload reports process health for monitoring.
type HealthPayload struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// HealthHandler godoc
//
//	@Summary		Health check
//	@Description	Reports process uptime and storage connectivity. Unauthenticated and exempt from rate limiting.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=HealthPayload}
//	@Failure		503	{object}	httpx.Envelope{data=HealthPayload}	"Storage unreachable"
//	@Router			/health [get].
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := HealthPayload{
			Status:   "ok",
			Uptime:   time.Since(startTime).String(),
			Version:  version,
			Database: "ok",
		}
		status := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			payload.Status = "degraded"
			payload.Database = "error: " + err.Error()
			status = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, status, httpx.Envelope{
			Success: status == http.StatusOK,
			Message: "Health check",
			Data:    payload,
		})
	}
}

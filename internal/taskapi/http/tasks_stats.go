package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskStatsHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP returns the caller's task counts grouped by status and
// priority, plus an overdue count.
//
//	@Summary	Get task statistics
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope{data=StatsPayload}
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/api/v1/tasks/stats [get].
func (h *TaskStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	stats, err := h.TaskService.Stats(ctx, identity.ID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Statistics retrieved successfully", toStatsPayload(stats))
}

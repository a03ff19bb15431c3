package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskGetHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP fetches one task. Tasks belonging to other users read as not
// found unless the caller is an admin.
//
//	@Summary	Get a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Task id"
//	@Success	200	{object}	httpx.Envelope{data=TaskPayload}
//	@Failure	401	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope	"Missing or foreign task"
//	@Router		/api/v1/tasks/{id} [get].
func (h *TaskGetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	task, err := h.TaskService.Get(ctx, callerFrom(identity), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Task retrieved successfully", toTaskPayload(task))
}

package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskCompleteHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP marks a task completed. Completing a completed task is a 400,
// not a no-op, so clients notice double submissions.
//
//	@Summary	Complete a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Task id"
//	@Success	200	{object}	httpx.Envelope{data=TaskPayload}
//	@Failure	400	{object}	httpx.Envelope	"Task is already completed"
//	@Failure	401	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/api/v1/tasks/{id}/complete [patch].
func (h *TaskCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	task, err := h.TaskService.Complete(ctx, callerFrom(identity), r.PathValue("id"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Task completed successfully", toTaskPayload(task))
}

package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskDeleteHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP permanently deletes a task.
//
//	@Summary	Delete a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Task id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	401	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/api/v1/tasks/{id} [delete].
func (h *TaskDeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	if err := h.TaskService.Delete(ctx, callerFrom(identity), r.PathValue("id")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskBulkHandler struct {
	TaskService *service.TaskService
}

type bulkStatusRequest struct {
	TaskIDs []string `json:"taskIds" validate:"required,min=1,max=100,dive,required"`
	Status  string   `json:"status" validate:"required,oneof=pending in_progress completed"`
}

type bulkDeleteRequest struct {
	TaskIDs []string `json:"taskIds" validate:"required,min=1,max=100,dive,required"`
}

// HandleStatus applies one status to many tasks. Each id succeeds or fails
// on its own; the response reports the success count and the failed ids.
//
//	@Summary		Bulk update task status
//	@Description	Applies the status to every listed task independently. Missing or foreign ids land in failedIds without aborting the rest.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bulkStatusRequest	true	"Task ids and target status"
//	@Success		200		{object}	httpx.Envelope{data=BulkPayload}
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope
//	@Router			/api/v1/tasks/bulk/status [patch].
func (h *TaskBulkHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	var req bulkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	res, err := h.TaskService.BulkUpdateStatus(ctx, callerFrom(identity), req.TaskIDs, domain.TaskStatus(req.Status))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Tasks updated", BulkPayload{Count: res.Count, FailedIDs: res.FailedIDs})
}

// HandleDelete deletes many tasks with the same partial-success contract as
// HandleStatus.
//
//	@Summary	Bulk delete tasks
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		bulkDeleteRequest	true	"Task ids"
//	@Success	200		{object}	httpx.Envelope{data=BulkPayload}
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	422		{object}	httpx.Envelope
//	@Router		/api/v1/tasks/bulk/delete [post].
func (h *TaskBulkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	var req bulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	res, err := h.TaskService.BulkDelete(ctx, callerFrom(identity), req.TaskIDs)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Tasks deleted", BulkPayload{Count: res.Count, FailedIDs: res.FailedIDs})
}

package http

import (
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskUpdateHandler struct {
	TaskService *service.TaskService
}

type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// ServeHTTP applies a partial update; omitted fields are unchanged. Moving
// status into or out of completed maintains the completion timestamp.
//
//	@Summary	Update a task
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Task id"
//	@Param		request	body		updateTaskRequest	true	"Fields to change"
//	@Success	200		{object}	httpx.Envelope{data=TaskPayload}
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Failure	422		{object}	httpx.Envelope
//	@Router		/api/v1/tasks/{id} [put].
func (h *TaskUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		in.Status = &s
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		in.Priority = &p
	}

	task, err := h.TaskService.Update(ctx, callerFrom(identity), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Task updated successfully", toTaskPayload(task))
}

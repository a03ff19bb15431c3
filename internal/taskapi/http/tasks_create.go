package http

import (
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskCreateHandler struct {
	TaskService *service.TaskService
}

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=2000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// ServeHTTP creates a task owned by the caller.
//
//	@Summary		Create a task
//	@Description	Creates a task owned by the authenticated user. Status defaults to pending, priority to medium.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createTaskRequest	true	"Task details"
//	@Success		201		{object}	httpx.Envelope{data=TaskPayload}
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope
//	@Router			/api/v1/tasks [post].
func (h *TaskCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	in := service.CreateTaskInput{
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

	task, err := h.TaskService.Create(ctx, identity.ID, in)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "Task created successfully", toTaskPayload(task))
}

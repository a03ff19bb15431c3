package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type TaskListHandler struct {
	TaskService *service.TaskService
}

// ServeHTTP lists the caller's tasks with filtering, pagination and sorting.
//
//	@Summary		List tasks
//	@Description	Returns the authenticated user's tasks. Filters are ANDed; search matches title and description case-insensitively.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status		query		string	false	"Filter by status"		Enums(pending, in_progress, completed)
//	@Param			priority	query		string	false	"Filter by priority"	Enums(low, medium, high)
//	@Param			search		query		string	false	"Substring of title or description"
//	@Param			dueFrom		query		string	false	"Due date lower bound (RFC 3339)"
//	@Param			dueTo		query		string	false	"Due date upper bound (RFC 3339)"
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			limit		query		int		false	"Page size (max 100)"
//	@Param			sortBy		query		string	false	"Sort field"	Enums(createdAt, updatedAt, dueDate, title, priority, status)
//	@Param			sortOrder	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Success		200			{object}	httpx.Envelope{data=[]TaskPayload,meta=httpx.PageMeta}
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		422			{object}	httpx.Envelope	"Unknown filter or sort value"
//	@Router			/api/v1/tasks [get].
func (h *TaskListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	filter, err := parseTaskFilter(r)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	tasks, total, err := h.TaskService.List(ctx, identity.ID, filter)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccessMeta(w, http.StatusOK, "Tasks retrieved successfully",
		toTaskPayloads(tasks), httpx.NewPageMeta(filter.Page, filter.Limit, total))
}

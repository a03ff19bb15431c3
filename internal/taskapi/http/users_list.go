package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type UsersListHandler struct {
	UserService *service.UserService
}

// ServeHTTP lists all accounts, paginated, newest first. Admin only.
//
//	@Summary	List users
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		page	query		int	false	"Page number (1-based)"
//	@Param		limit	query		int	false	"Page size (max 100)"
//	@Success	200		{object}	httpx.Envelope{data=[]UserPayload,meta=httpx.PageMeta}
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	403		{object}	httpx.Envelope	"Caller is not an admin"
//	@Router		/api/v1/users [get].
func (h *UsersListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, limit := parsePage(r)

	users, total, err := h.UserService.ListUsers(ctx, page, limit)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payload := make([]UserPayload, 0, len(users))
	for _, u := range users {
		payload = append(payload, toUserPayload(u))
	}

	httpx.NoCache(w)
	httpx.WriteSuccessMeta(w, http.StatusOK, "Users retrieved successfully", payload, httpx.NewPageMeta(page, limit, total))
}

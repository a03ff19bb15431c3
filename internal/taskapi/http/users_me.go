package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// HandleGet returns the caller's profile.
//
//	@Summary	Get own profile
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope{data=UserPayload}
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/api/v1/users/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	user, err := h.UserService.GetUserByID(ctx, identity.ID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Profile retrieved successfully", toUserPayload(user))
}

// HandlePut updates the caller's display names.
//
//	@Summary	Update own profile
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		updateProfileRequest	true	"New names"
//	@Success	200		{object}	httpx.Envelope{data=UserPayload}
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	422		{object}	httpx.Envelope
//	@Router		/api/v1/users/me [put].
func (h *MeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	user, err := h.UserService.UpdateProfile(ctx, identity.ID, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Profile updated successfully", toUserPayload(user))
}

// HandleDelete deactivates the caller's account. The record is kept but the
// account stops authenticating; outstanding tokens die at the auth gate.
//
//	@Summary	Deactivate own account
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/api/v1/users/me [delete].
func (h *MeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeServiceError(ctx, w, errMissingIdentity())
		return
	}

	if err := h.UserService.Deactivate(ctx, identity.ID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	slogx.FromContext(ctx).Info("account deactivated", "user_id", identity.ID)
	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Account deactivated successfully", nil)
}

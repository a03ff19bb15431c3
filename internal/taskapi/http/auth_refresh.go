package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ServeHTTP exchanges a refresh token for a fresh token pair.
//
//	@Summary		Refresh session tokens
//	@Description	Verifies the refresh token and issues a new access/refresh token pair. The presented pair is not invalidated server-side.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		refreshRequest	true	"Refresh token"
//	@Success		200		{object}	httpx.Envelope{data=domain.TokenPair}
//	@Failure		401		{object}	httpx.Envelope	"Invalid or expired refresh token"
//	@Router			/api/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Tokens refreshed successfully", pair)
}

// LogoutHandler acknowledges a logout. Sessions are stateless JWTs, so there
// is nothing to invalidate server-side; clients discard their tokens.
type LogoutHandler struct{}

// ServeHTTP handles logout.
//
//	@Summary	Log out
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/api/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

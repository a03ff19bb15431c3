package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ServeHTTP authenticates an existing account.
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns the profile with a fresh access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	httpx.Envelope{data=AuthPayload}
//	@Failure		401		{object}	httpx.Envelope	"Invalid email or password"
//	@Failure		422		{object}	httpx.Envelope	"Validation failed"
//	@Router			/api/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusOK, "Logged in successfully", AuthPayload{
		User:         toUserPayload(res.User),
		Token:        res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	})
}

package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
}

// ServeHTTP registers a new account.
//
//	@Summary		Register a new account
//	@Description	Creates a user account and returns the profile with an access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signupRequest	true	"Signup details"
//	@Success		201		{object}	httpx.Envelope{data=AuthPayload}
//	@Failure		409		{object}	httpx.Envelope	"Email already registered"
//	@Failure		422		{object}	httpx.Envelope	"Validation failed"
//	@Router			/api/v1/auth/signup [post].
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	res, err := h.AuthService.Signup(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteSuccess(w, http.StatusCreated, "Account created successfully", AuthPayload{
		User:         toUserPayload(res.User),
		Token:        res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	})
}

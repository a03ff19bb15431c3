package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/pkg/jwtx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// Error codes written by the middlewares in this package. They mirror the
// service's wire taxonomy so every layer speaks the same codes.
const (
	ErrorCodeAuthentication = "AUTHENTICATION_ERROR"
	ErrorCodeAuthorization  = "AUTHORIZATION_ERROR"
	ErrorCodeRateLimited    = "RATE_LIMIT_EXCEEDED"
)

// TokenVerifier verifies a raw token of the given kind. *jwtx.Codec
// satisfies this.
type TokenVerifier interface {
	Verify(raw string, kind jwtx.Kind) (jwtx.Claims, error)
}

// IdentityResolver turns verified claims into a live caller identity. It
// must fail when the user record is missing or deactivated.
type IdentityResolver func(ctx context.Context, claims jwtx.Claims) (Identity, error)

// AuthnMiddleware authenticates every request: it extracts the bearer
// token, verifies it as an access token, and resolves the subject to an
// active user. Every failure mode (missing header, malformed or expired
// token, unknown or inactive user) produces the same 401 envelope so
// callers can't probe which sub-check rejected them.
func AuthnMiddleware(v TokenVerifier, resolve IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeAuthnError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw, jwtx.KindAccess)
			if err != nil {
				log.Warn("access token rejected", "err", err)
				writeAuthnError(w)
				return
			}

			identity, err := resolve(ctx, claims)
			if err != nil {
				log.Warn("identity resolution failed", "sub", claims.Subject, "err", err)
				writeAuthnError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, identity)))
		})
	}
}

func writeAuthnError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, ErrorCodeAuthentication, "Authentication required", nil)
}

package httpx

import "net/http"

// RequireRole gates a handler on the caller's role being one of the
// allowed set. Runs after AuthnMiddleware; an unauthenticated request is
// rejected 401 rather than 403.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeAuthnError(w)
				return
			}
			if _, ok := want[identity.Role]; !ok {
				WriteError(w, http.StatusForbidden, ErrorCodeAuthorization, "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

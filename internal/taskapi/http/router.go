package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
	"github.com/taskdeck/taskdeck/pkg/slogx"

	_ "github.com/taskdeck/taskdeck/api/taskapi" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     httpx.TokenVerifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
	TaskService *service.TaskService
}

func NewRouter(
	verifier httpx.TokenVerifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskDeck API
//	@version		0.1.0
//	@description	Task tracking service with JWT session auth. Every response shares one
//	@description	envelope: {success, message, data?, meta?} on success, {success:false,
//	@description	message, error, details?} on failure.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn builds the auth gate for secured routes: verify the access token,
// then resolve the subject to a live, active account.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.verifier, func(ctx context.Context, claims jwtx.Claims) (httpx.Identity, error) {
		user, err := r.UserService.GetActiveUser(ctx, claims.Subject)
		if err != nil {
			return httpx.Identity{}, err
		}
		return httpx.Identity{ID: user.ID, Email: user.Email, Role: string(user.Role)}, nil
	})
}

func (r *Router) registerAuth() {
	// Credential endpoints get the strict per-IP limit: they are the brute
	// force surface, and they run before any authentication.
	r.Mux.Handle("POST /api/v1/auth/signup",
		httpx.Chain(&SignupHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/v1/auth/refresh",
		httpx.Chain(&RefreshHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Logout requires a valid session even though it is stateless, so an
	// expired token logs out with a 401 like any other secured route.
	r.Mux.Handle("POST /api/v1/auth/logout",
		r.secured(&LogoutHandler{}, httpx.ModerateLimit))
}

// secured wraps a handler for authenticated routes. The outer per-IP limit
// runs before the auth gate so unauthenticated floods are shed without
// paying for token verification or a user lookup; the per-user limit then
// throttles authenticated callers independent of their source address.
func (r *Router) secured(h http.Handler, cfg httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.RateLimitByIP(httpx.LenientLimit),
		r.authn(),
	}
	mws = append(mws, extra...)
	mws = append(mws, httpx.RateLimitByUser(cfg))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerUsers() {
	me := &MeHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/v1/users/me",
		r.secured(http.HandlerFunc(me.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/users/me",
		r.secured(http.HandlerFunc(me.HandlePut), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/users/me",
		r.secured(http.HandlerFunc(me.HandleDelete), httpx.ModerateLimit))

	// Operator-only listing.
	r.Mux.Handle("GET /api/v1/users",
		r.secured(&UsersListHandler{UserService: r.UserService}, httpx.ModerateLimit,
			httpx.RequireRole(string(domain.RoleAdmin))))
}

func (r *Router) registerTasks() {
	r.Mux.Handle("POST /api/v1/tasks",
		r.secured(&TaskCreateHandler{TaskService: r.TaskService}, httpx.ModerateLimit))
	r.Mux.Handle("GET /api/v1/tasks",
		r.secured(&TaskListHandler{TaskService: r.TaskService}, httpx.LenientLimit))
	r.Mux.Handle("GET /api/v1/tasks/stats",
		r.secured(&TaskStatsHandler{TaskService: r.TaskService}, httpx.LenientLimit))

	r.Mux.Handle("GET /api/v1/tasks/{id}",
		r.secured(&TaskGetHandler{TaskService: r.TaskService}, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/v1/tasks/{id}",
		r.secured(&TaskUpdateHandler{TaskService: r.TaskService}, httpx.ModerateLimit))
	r.Mux.Handle("PATCH /api/v1/tasks/{id}/complete",
		r.secured(&TaskCompleteHandler{TaskService: r.TaskService}, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/v1/tasks/{id}",
		r.secured(&TaskDeleteHandler{TaskService: r.TaskService}, httpx.ModerateLimit))

	bulk := &TaskBulkHandler{TaskService: r.TaskService}
	r.Mux.Handle("PATCH /api/v1/tasks/bulk/status",
		r.secured(http.HandlerFunc(bulk.HandleStatus), httpx.ModerateLimit))
	r.Mux.Handle("POST /api/v1/tasks/bulk/delete",
		r.secured(http.HandlerFunc(bulk.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// No rate limit: load balancers poll this.
	r.Mux.Handle("GET /health", HealthHandler(r.startTime, r.buildVersion, r.store))
}

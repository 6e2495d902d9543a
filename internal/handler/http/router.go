package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studysphere/backend/internal/auth"
	"github.com/studysphere/backend/internal/repository"
	"github.com/studysphere/backend/internal/service"
	"github.com/studysphere/backend/pkg/health"
	"github.com/studysphere/backend/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	AuthService   *service.AuthService
	GroupService  *service.GroupService
	Tokens        *auth.TokenService
	Accounts      repository.AccountRepository
	Groups        repository.GroupRepository
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
}

// NewRouter creates a chi router with all backend routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("studysphere"))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	requireAuth := RequireAuth(deps.Tokens, deps.Accounts)
	optionalAuth := OptionalAuth(deps.Tokens, deps.Accounts)
	requireOwner := RequireGroupOwner(deps.Groups)

	// Auth endpoints
	authHandler := NewAuthHandler(deps.AuthService, deps.Logger)
	r.Route("/api/auth", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/register", authHandler.Register)
		r.With(ContentTypeJSON).Post("/login", authHandler.Login)
		r.With(ContentTypeJSON).Post("/refresh", authHandler.Refresh)

		r.With(requireAuth).Post("/logout", authHandler.Logout)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	// Group endpoints
	groupHandler := NewGroupHandler(deps.GroupService, deps.Logger)
	r.Route("/api/groups", func(r chi.Router) {
		r.With(requireAuth, ContentTypeJSON).Post("/", groupHandler.Create)
		r.With(optionalAuth).Get("/", groupHandler.List)

		r.Route("/{name}", func(r chi.Router) {
			r.With(optionalAuth).Get("/", groupHandler.Get)
			r.With(requireAuth, requireOwner, ContentTypeJSON).Put("/", groupHandler.Update)
			r.With(requireAuth, requireOwner).Delete("/", groupHandler.Delete)
		})
	})

	return r
}

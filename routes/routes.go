package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/blog-api/app"
	"github.com/upb/blog-api/auth"
	"github.com/upb/blog-api/handlers"
	"github.com/upb/blog-api/internal/observability"
	"github.com/upb/blog-api/utils"
)

// RoutePolicies lists every policy name the router gates on
var RoutePolicies = []string{auth.PolicyAdmin, auth.PolicyUser}

// SetupRoutes configures all application routes and middleware.
// It fails when a policy the routes depend on is not registered.
func SetupRoutes(deps *app.Dependencies) (http.Handler, error) {
	if err := deps.Policies.Require(RoutePolicies...); err != nil {
		return nil, fmt.Errorf("route policy table: %w", err)
	}

	var db handlers.HealthChecker
	if deps.DB != nil {
		db = deps.DB
	}

	health := handlers.NewHealthHandler(db, deps.Policies, deps.Config.Environment, deps.Logger)
	categories := handlers.NewCategoryHandler(deps.CategoryService, deps.Logger)
	articles := handlers.NewArticleHandler(deps.ArticleService, deps.Logger)
	users := handlers.NewUserHandler(deps.UserService, deps.Logger)
	authn := handlers.NewAuthHandler(deps.UserService, deps.Logger)

	requireAuth := deps.AuthMiddleware.RequireAuth
	adminOnly := deps.PolicyMiddleware.RequirePolicy(auth.PolicyAdmin)
	usersOnly := deps.PolicyMiddleware.RequirePolicy(auth.PolicyUser)

	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(deps.Logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", health.HandleStatus)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authn.HandleRegister)
			r.Post("/login", authn.HandleLogin)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.HandleList)
			r.Get("/{id}", categories.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, adminOnly)
				r.Post("/", categories.HandleCreate)
				r.Put("/{id}", categories.HandleUpdate)
				r.Delete("/{id}", categories.HandleDelete)
			})
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articles.HandleList)
			r.Get("/{id}", articles.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, usersOnly)
				r.Post("/", articles.HandleCreate)
				r.Put("/{id}", articles.HandleUpdate)
			})
			r.With(requireAuth, adminOnly).Delete("/{id}", articles.HandleDelete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authn.HandleMe)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", users.HandleList)
				r.Get("/{id}", users.HandleGet)
				r.Put("/{id}", users.HandleUpdate)
				r.Delete("/{id}", users.HandleDelete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r, nil
}

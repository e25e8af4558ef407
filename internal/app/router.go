package app

import (
	"net/http"

	"taskManager/internal/handlers"
	"taskManager/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type routerDeps struct {
	users    *handlers.UserHandler
	statuses *handlers.StatusHandler
	labels   *handlers.LabelHandler
	tasks    *handlers.TaskHandler
	auth     *handlers.AuthHandler
	health   *handlers.HealthHandler

	tokens      middleware.TokenParser
	rateLimit   int
	corsOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(d.rateLimit))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"X-Total-Count", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", d.health.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// без токена: вход и чтение статусов
		r.Post("/login", d.auth.Login)
		r.Get("/task_statuses", d.statuses.List)
		r.Get("/task_statuses/{id}", d.statuses.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(d.tokens))

			r.Post("/task_statuses", d.statuses.Create)
			r.Put("/task_statuses/{id}", d.statuses.Update)
			r.Delete("/task_statuses/{id}", d.statuses.Delete)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", d.users.List)
				r.Post("/", d.users.Create)
				r.Get("/{id}", d.users.Get)
				r.Put("/{id}", d.users.Update)
				r.Delete("/{id}", d.users.Delete)
			})

			r.Route("/labels", func(r chi.Router) {
				r.Get("/", d.labels.List)
				r.Post("/", d.labels.Create)
				r.Get("/{id}", d.labels.Get)
				r.Put("/{id}", d.labels.Update)
				r.Delete("/{id}", d.labels.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", d.tasks.List)
				r.Post("/", d.tasks.Create)
				r.Get("/{id}", d.tasks.Get)
				r.Put("/{id}", d.tasks.Update)
				r.Delete("/{id}", d.tasks.Delete)
			})
		})
	})

	return otelhttp.NewHandler(r, "task-manager",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/crm-api/internal/api"
	apimiddleware "github.com/phrazzld/crm-api/internal/api/middleware"
)

// routes builds the application router: standard chi middleware, the
// public auth endpoints, and the authenticated API surface.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	clientHandler := api.NewClientHandler(app.clientService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService, app.logger)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.cache)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints.
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Everything else requires a valid, unrevoked token.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/logout", authHandler.Logout)
			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.UpdateMe)
			r.Get("/users", userHandler.List)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", clientHandler.List)
				r.Post("/", clientHandler.Create)
				r.Get("/random-payload", clientHandler.RandomPayload)
				r.Get("/{id}", clientHandler.Get)
				r.Put("/{id}", clientHandler.Update)
				r.Delete("/{id}", clientHandler.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/random-payload", taskHandler.RandomPayload)
				r.Get("/{id}", taskHandler.Get)
				r.Put("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
			})

			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/recent-activities", dashboardHandler.RecentActivities)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes assembles the chi router: public endpoints, then the protected
// group behind the bearer-token middleware.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/test", a.makeHandler(a.handleTest))
		r.Post("/register", a.makeHandler(a.handleRegister))
		r.Post("/login", a.makeHandler(a.handleLogin))

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/users", a.makeHandler(a.handleListUsers))
			r.Get("/users/{id}", a.makeHandler(a.handleGetUser))
			r.Put("/users/{id}", a.makeHandler(a.handleUpdateUser))
			r.Delete("/users/{id}", a.makeHandler(a.handleDeleteUser))
			r.Get("/protected", a.makeHandler(a.handleProtected))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

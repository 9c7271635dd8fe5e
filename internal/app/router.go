package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/markhoor-institute/markhoor-api/internal/auth"
	"github.com/markhoor-institute/markhoor-api/internal/books"
	"github.com/markhoor-institute/markhoor-api/internal/contact"
	"github.com/markhoor-institute/markhoor-api/internal/courses"
	"github.com/markhoor-institute/markhoor-api/internal/observability"
	"github.com/markhoor-institute/markhoor-api/internal/students"
	"github.com/markhoor-institute/markhoor-api/internal/uploads"
	"github.com/markhoor-institute/markhoor-api/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthHandler     *auth.Handler
	CoursesHandler  *courses.Handler
	BooksHandler    *books.Handler
	StudentsHandler *students.Handler
	ContactHandler  *contact.Handler
	JobHandler      *jobs.Handler
	Uploads         *uploads.Storage
	RequireAdmin    func(http.Handler) http.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with Markhoor defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Route("/auth", params.AuthHandler.MountRoutes)
		if params.CoursesHandler != nil {
			r.Route("/courses", params.CoursesHandler.MountRoutes)
		}
		if params.BooksHandler != nil {
			r.Route("/books", params.BooksHandler.MountRoutes)
		}
		if params.StudentsHandler != nil {
			r.Route("/students", params.StudentsHandler.MountRoutes)
		}
		if params.ContactHandler != nil {
			r.Route("/contact", params.ContactHandler.MountRoutes)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", func(r chi.Router) {
				if params.RequireAdmin != nil {
					r.Use(params.RequireAdmin)
				}
				params.JobHandler.MountRoutes(r)
			})
		}
	})

	if params.Uploads != nil {
		r.Handle("/uploads/*", params.Uploads.Handler())
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}

package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"contentfactory/internal/http/handlers"
	"contentfactory/internal/infra"
	"contentfactory/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer, middleware.RequestID, middleware.Logger(logger))

	r.Get("/healthz", app.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

		r.Route("/job", func(r chi.Router) {
			r.Post("/create", app.JobCreate)
			r.Get("/{id}", app.JobStatus)
		})

		r.Post("/image/process", app.ImageProcess)

		r.Route("/ai/consult", func(r chi.Router) {
			r.Post("/", app.ConsultCreate)
			r.Get("/{id}", app.ConsultStatus)
		})
	})

	return r
}

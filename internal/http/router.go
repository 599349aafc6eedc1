package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"country-directory-service/internal/http/handlers"
	"country-directory-service/internal/http/middleware"
	"country-directory-service/internal/metrics"
)

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers the country API on a chi router with CORS and request logging.
func NewRouter(h *handlers.Handler, opts RouterOptions) nethttp.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Middleware(opts.Logger, opts.Recorder))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{nethttp.MethodGet, nethttp.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/regions", h.Regions)
	r.Route("/countries", func(r chi.Router) {
		r.Get("/", h.Countries)
		r.Get("/{code}", h.CountryByCode)
		r.Get("/name/{name}", h.CountryByName)
	})
	return r
}

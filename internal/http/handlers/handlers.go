package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appcountries "country-directory-service/internal/app/countries"
	domaincountries "country-directory-service/internal/domain/countries"
	"country-directory-service/internal/logging"
)

// CountryService is the query surface the handlers need. *appcountries.Service implements it.
type CountryService interface {
	Search(ctx context.Context, c appcountries.Criteria) ([]domaincountries.Country, error)
	CountryByCode(ctx context.Context, code string) (domaincountries.Country, error)
	CountryByName(ctx context.Context, name string) (domaincountries.Country, error)
	Regions(ctx context.Context) ([]string, error)
}

// Handler wires HTTP routes to the country service.
type Handler struct {
	svc    CountryService
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(svc CountryService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type countriesResponse struct {
	Count     int                       `json:"count"`
	Countries []domaincountries.Country `json:"countries"`
}

type regionsResponse struct {
	Regions []string `json:"regions"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Countries lists countries, optionally filtered by ?search= and ?region= and ordered by ?sort=.
func (h *Handler) Countries(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := r.URL.Query()
	criteria := appcountries.Criteria{
		Search: q.Get("search"),
		Region: q.Get("region"),
		Sort:   q.Get("sort"),
	}
	if _, ok := appcountries.ParseSort(criteria.Sort); !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid sort (expected name, population or area)", h.logger)
		return
	}

	list, err := h.svc.Search(r.Context(), criteria)
	if err != nil {
		writeQueryError(w, r, err, h.logger)
		return
	}

	logging.Info(loggerFromContext(r, h.logger), "served countries", logging.FieldCount, len(list))
	writeJSON(w, nethttp.StatusOK, countriesResponse{Count: len(list), Countries: list}, h.logger)
}

// CountryByCode returns one country by alpha-2 or alpha-3 code.
func (h *Handler) CountryByCode(w nethttp.ResponseWriter, r *nethttp.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" || strings.ContainsAny(code, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid country code", h.logger)
		return
	}

	country, err := h.svc.CountryByCode(r.Context(), code)
	if err != nil {
		writeQueryError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, country, h.logger)
}

// CountryByName returns the first country matching the name.
func (h *Handler) CountryByName(w nethttp.ResponseWriter, r *nethttp.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid country name", h.logger)
		return
	}

	country, err := h.svc.CountryByName(r.Context(), name)
	if err != nil {
		writeQueryError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, country, h.logger)
}

// Regions lists the distinct regions.
func (h *Handler) Regions(w nethttp.ResponseWriter, r *nethttp.Request) {
	regions, err := h.svc.Regions(r.Context())
	if err != nil {
		writeQueryError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, regionsResponse{Regions: regions}, h.logger)
}

// NotFound answers unknown routes in the JSON error format.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

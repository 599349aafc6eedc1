package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	appcountries "country-directory-service/internal/app/countries"
	"country-directory-service/internal/http/middleware"
	"country-directory-service/internal/logging"
)

// writeJSON encodes before writing the header so an unencodable payload
// becomes a 500 instead of a 200 with a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error(logger, "failed to encode response", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeQueryError maps a façade failure onto an HTTP status. Upstream failures
// surface as 502 without the upstream detail.
func writeQueryError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := http.StatusBadGateway, "upstream unavailable"
	if qErr, ok := appcountries.AsQueryError(err); ok {
		switch qErr.Reason {
		case appcountries.ReasonNotFound:
			status, message = http.StatusNotFound, "country not found"
		case appcountries.ReasonInvalidArgument:
			status, message = http.StatusBadRequest, "invalid argument"
		case appcountries.ReasonNormalization:
			message = "upstream returned malformed data"
		}
	}
	if r.Context().Err() != nil {
		status, message = http.StatusServiceUnavailable, "request canceled"
	}
	writeError(w, r, status, message, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

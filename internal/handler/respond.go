package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/litoralhub/backend/internal/domain"
)

// userIDHeader carries the acting user's id, injected by the auth gateway in
// front of this service. Absent or malformed values mean an anonymous caller.
const userIDHeader = "X-User-ID"

// writeJSON serializes v with the given status. Encoding failures are logged
// rather than surfaced — the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields so
// client typos surface as 422s instead of silently dropped data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathID parses the {id} URL parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// actingUser extracts the acting user's id from the request, or uuid.Nil for
// anonymous callers. The service layer decides which operations require one.
func actingUser(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(r.Header.Get(userIDHeader))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// writeError maps a service error to the appropriate HTTP response.
// notFoundMsg supplies the human-readable 404 message because the handler is
// the layer that knows what was being looked up.
func writeError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFoundMsg))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody())
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}

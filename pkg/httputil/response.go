package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/studysphere/backend/pkg/errors"
	"github.com/studysphere/backend/pkg/logger"
)

// ErrorResponse is the JSON error body returned by every failing endpoint:
// a single message string under the "error" key.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates an error into a status code and {"error": "<message>"}
// body. AppError carries its own status and message; anything else is treated
// as an internal failure: the detail is logged, never surfaced to the client.
// It prefers the request-scoped logger from context over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status != http.StatusInternalServerError {
		WriteJSON(w, appErr.Status, ErrorResponse{Error: appErr.Message})
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message = "Resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "Resource already exists"
	case errors.Is(err, apperrors.ErrUnauthorized):
		message = "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		message = "Forbidden"
	case errors.Is(err, apperrors.ErrValidation):
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteUnauthorized writes a 401 with the uniform message used by the auth
// middleware. Callers must not vary the message per failure cause.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
}

// ParseUUID validates that the given string is a valid UUID and returns it.
// If invalid, it writes a 400 Bad Request response and returns uuid.Nil plus
// false, signaling the caller to return early.
func ParseUUID(w http.ResponseWriter, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(param)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid UUID: " + param})
		return uuid.Nil, false
	}
	return id, true
}

package http

import (
	"log/slog"
	"net/http"

	mw "github.com/lorrc/users-api/internal/adapters/primary/http/middleware"
	apperrors "github.com/lorrc/users-api/internal/core/errors"
	"github.com/lorrc/users-api/internal/infrastructure/metrics"
)

const internalErrorMessage = "internal server error"

// ErrorResponse is the only JSON error shape the API produces.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is the single place where errors become HTTP responses.
type ErrorHandler struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewErrorHandler creates a new error handler. m may be nil when metrics are disabled.
func NewErrorHandler(logger *slog.Logger, m *metrics.Metrics) *ErrorHandler {
	return &ErrorHandler{logger: logger, metrics: m}
}

// Handle maps err to a status and writes {"error": ...}. UserErrors use their
// own message; anything else falls back to a generic 500.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status, message, kind := mapError(err)

	h.metrics.ObserveError(kind)
	h.logError(r, status, kind, err)

	WriteJSON(w, status, ErrorResponse{Error: message})
}

// mapError is the UserError to status mapping.
func mapError(err error) (status int, message, kind string) {
	userErr, ok := apperrors.As(err)
	if !ok {
		return http.StatusInternalServerError, internalErrorMessage, "internal"
	}

	switch userErr.Kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound, userErr.Error(), userErr.Kind.String()
	case apperrors.KindValidation:
		return http.StatusBadRequest, userErr.Error(), userErr.Kind.String()
	case apperrors.KindDatabase:
		return http.StatusInternalServerError, userErr.Error(), userErr.Kind.String()
	default:
		return http.StatusInternalServerError, internalErrorMessage, "internal"
	}
}

// logError logs the full error chain, including causes that are not sent to the client
func (h *ErrorHandler) logError(r *http.Request, status int, kind string, err error) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", status,
		"kind", kind,
		"error", err.Error(),
	}
	if cause := unwrapCause(err); cause != nil {
		attrs = append(attrs, "cause", cause.Error())
	}

	ctx := r.Context()
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "server error", attrs...)
		return
	}
	h.logger.WarnContext(ctx, "client error", attrs...)
}

func unwrapCause(err error) error {
	if userErr, ok := apperrors.As(err); ok {
		return userErr.Err
	}
	return nil
}

// NotFound answers requests that match no route.
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "route not found"})
}

// MethodNotAllowed answers requests whose path matches but whose method does not.
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
}

// Recoverer wraps next once so that panics end in the generic 500 body.
func (h *ErrorHandler) Recoverer(next http.Handler) http.Handler {
	return mw.RecoveryLogger(h.logger, h.Handle)(next)
}

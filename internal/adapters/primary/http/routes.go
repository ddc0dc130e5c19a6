package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Route is one entry of the route table.
type Route struct {
	Method  string
	Pattern string
	Handler HandlerFunc
}

// CORSOptions configures the CORS policy applied to the route set.
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int
}

// DefaultCORSOptions allows every origin.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{AllowedOrigins: []string{"*"}, MaxAge: 300}
}

// Wrap funnels every error returned by fn to the error handler.
func (h *ErrorHandler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}
}

// NewRouter mounts routes on one chi router. The combined set is wrapped once
// with recovery and once with CORS, so every route fails with the same JSON
// shape. Unmatched paths and methods answer through the error handler.
func NewRouter(routes []Route, errorHandler *ErrorHandler, corsOpts CORSOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(errorHandler.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOpts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         corsOpts.MaxAge,
	}))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	for _, route := range routes {
		r.Method(strings.ToUpper(route.Method), route.Pattern, errorHandler.Wrap(route.Handler))
	}

	return r
}

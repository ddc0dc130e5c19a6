package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/users-api/internal/adapters/secondary/memory"
)

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error {
	return errors.New("connection refused")
}

func newHealthRouter(checker HealthChecker) stdhttp.Handler {
	r := chi.NewRouter()
	NewHealthHandler(checker, "memory", "test").RegisterRoutes(r)
	return r
}

func TestHealth_Healthy(t *testing.T) {
	router := newHealthRouter(memory.NewUserRepository())

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		t.Run(path, func(t *testing.T) {
			rec := doRequest(t, router, stdhttp.MethodGet, path, "")

			require.Equal(t, stdhttp.StatusOK, rec.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "healthy", resp.Status)
		})
	}
}

func TestHealth_ReadinessFailsWhenStoreDown(t *testing.T) {
	router := newHealthRouter(failingPinger{})

	rec := doRequest(t, router, stdhttp.MethodGet, "/health/ready", "")

	require.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "memory", resp.Checks["database"].Store)
	assert.Equal(t, "connection refused", resp.Checks["database"].Message)

	// Liveness does not depend on the store
	live := doRequest(t, router, stdhttp.MethodGet, "/health/live", "")
	assert.Equal(t, stdhttp.StatusOK, live.Code)
}

func TestHealth_DetailedReportsDegraded(t *testing.T) {
	router := newHealthRouter(failingPinger{})

	rec := doRequest(t, router, stdhttp.MethodGet, "/health", "")

	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp["status"])
	assert.Contains(t, resp, "goroutines")
}

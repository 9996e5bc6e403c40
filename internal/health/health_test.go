package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storedesk/internal/storage/sqlite"
)

func okCheck(context.Context) error { return nil }

func failCheck(context.Context) error { return errors.New("service unavailable") }

func serve(t *testing.T, h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthHandler(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("store", NewFuncChecker("store", okCheck))

	w := serve(t, handler.ServeHTTP, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var response Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, StatusHealthy, response.Status)
	assert.Equal(t, "v1.0.0", response.Version)
	assert.Len(t, response.Checks, 1)
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("store", NewFuncChecker("store", failCheck))

	w := serve(t, handler.ServeHTTP, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, StatusUnhealthy, response.Status)
	assert.Equal(t, "service unavailable", response.Checks["store"].Message)
}

func TestLivenessHandler(t *testing.T) {
	w := serve(t, LivenessHandler, "/livez")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("store", NewFuncChecker("store", okCheck))

	w := serve(t, handler.ReadinessHandler, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())

	handler.RegisterChecker("broker", NewFuncChecker("broker", failCheck))
	w = serve(t, handler.ReadinessHandler, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not ready", w.Body.String())
}

func TestFuncChecker_ReceivesDeadline(t *testing.T) {
	handler := NewHandler("dev")
	var hadDeadline bool
	handler.RegisterChecker("ping", NewFuncChecker("ping", func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}))

	serve(t, handler.ServeHTTP, "/healthz")
	assert.True(t, hadDeadline)
}

func TestPingChecker_SQLiteStore(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)

	checker := NewPingChecker("sqlite", store)
	assert.Equal(t, StatusHealthy, checker.Check(context.Background()).Status)

	require.NoError(t, store.Close())
	check := checker.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.NotEmpty(t, check.Message)
}

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upsearch/upsearch/internal/handlers"
	"github.com/upsearch/upsearch/internal/middleware"
)

type testOutput struct {
	Body string `json:"body"`
}

// captureMeta wires a GET /test route that records the request metadata the
// middleware attached to the context.
func captureMeta(t *testing.T) (*chi.Mux, *handlers.RequestMeta) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	meta := &handlers.RequestMeta{}

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		*meta = handlers.RequestMetaFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	return router, meta
}

func TestRequestMeta(t *testing.T) {
	t.Run("takes the first X-Forwarded-For entry", func(t *testing.T) {
		router, meta := captureMeta(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 172.16.0.1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "203.0.113.7", meta.ClientIP)
		assert.NotEmpty(t, meta.RequestID)
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		router, meta := captureMeta(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Real-IP", "198.51.100.9")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "198.51.100.9", meta.ClientIP)
	})

	t.Run("falls back to the host when no proxy headers are set", func(t *testing.T) {
		router, meta := captureMeta(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, meta.ClientIP)
	})

	t.Run("issues a fresh request id per request", func(t *testing.T) {
		router, meta := captureMeta(t)

		ids := make(map[string]bool)

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			require.Equal(t, http.StatusOK, w.Code)
			ids[meta.RequestID] = true
		}

		assert.Len(t, ids, 3)
	})
}

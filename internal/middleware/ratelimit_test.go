package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/upsearch/upsearch/internal/middleware"
	"github.com/upsearch/upsearch/internal/ratelimit"
)

type mockLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (m *mockLimiter) Allow(_ context.Context, key string) (bool, error) {
	m.keys = append(m.keys, key)

	return m.allowed, m.err
}

func limitedRouter(limiter ratelimit.Limiter) *chi.Mux {
	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RateLimiter(api, limiter))

	huma.Get(api, "/test", func(context.Context, *struct{}) (*testOutput, error) {
		return &testOutput{Body: "ok"}, nil
	})

	return router
}

func TestRateLimiter(t *testing.T) {
	t.Run("passes allowed requests through", func(t *testing.T) {
		router := limitedRouter(&mockLimiter{allowed: true})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("responds 429 when the limit is hit", func(t *testing.T) {
		router := limitedRouter(&mockLimiter{allowed: false})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("responds 500 when the limiter fails", func(t *testing.T) {
		router := limitedRouter(&mockLimiter{err: errors.New("store unavailable")})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("derives distinct keys for distinct user agents", func(t *testing.T) {
		limiter := &mockLimiter{allowed: true}
		router := limitedRouter(limiter)

		first := httptest.NewRequest(http.MethodGet, "/test", nil)
		first.Header.Set("User-Agent", "AgentOne/1.0")

		second := httptest.NewRequest(http.MethodGet, "/test", nil)
		second.Header.Set("User-Agent", "AgentTwo/1.0")

		router.ServeHTTP(httptest.NewRecorder(), first)
		router.ServeHTTP(httptest.NewRecorder(), second)

		assert.Len(t, limiter.keys, 2)
		assert.NotEqual(t, limiter.keys[0], limiter.keys[1])
	})
}

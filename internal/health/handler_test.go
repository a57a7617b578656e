package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upsearch/upsearch/internal/health"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error {
	return m.err
}

func TestHandler_Check(t *testing.T) {
	t.Run("returns ok when all dependencies are healthy", func(t *testing.T) {
		handler := health.NewHandler(&mockChecker{}, &mockChecker{})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Storage)
	})

	t.Run("returns degraded when redis is unreachable", func(t *testing.T) {
		handler := health.NewHandler(&mockChecker{err: errors.New("connection refused")}, &mockChecker{})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Storage)
	})

	t.Run("returns degraded when the data directory is missing", func(t *testing.T) {
		handler := health.NewHandler(&mockChecker{}, &mockChecker{err: errors.New("no such file or directory")})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Storage)
	})
}

func TestDataDirChecker(t *testing.T) {
	t.Run("pings an existing directory", func(t *testing.T) {
		checker := health.NewDataDirChecker(t.TempDir())

		assert.NoError(t, checker.Ping(context.Background()))
	})

	t.Run("errors on a missing directory", func(t *testing.T) {
		checker := health.NewDataDirChecker("/nonexistent/upsearch-data")

		assert.Error(t, checker.Ping(context.Background()))
	})
}

package health

import (
	"context"
	"os"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// DataDirChecker verifies the record directories are accessible.
type DataDirChecker struct {
	dir string
}

// NewDataDirChecker creates a checker for the data directory.
func NewDataDirChecker(dir string) *DataDirChecker {
	return &DataDirChecker{dir: dir}
}

func (d *DataDirChecker) Ping(_ context.Context) error {
	_, err := os.Stat(d.dir)

	return err
}

// Handler handles health check operations.
type Handler struct {
	redis Checker
	data  Checker
}

// NewHandler creates a new health handler.
func NewHandler(redis, data Checker) *Handler {
	return &Handler{
		redis: redis,
		data:  data,
	}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status  string `json:"status"`
		Redis   string `json:"redis"`
		Storage string `json:"storage"`
	}
}

// Check reports the health of the service and its dependencies.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Redis = "healthy"
	resp.Body.Storage = "healthy"

	if err := h.redis.Ping(ctx); err != nil {
		resp.Body.Redis = "unhealthy"
		resp.Body.Status = "degraded"
	}

	if err := h.data.Ping(ctx); err != nil {
		resp.Body.Storage = "unhealthy"
		resp.Body.Status = "degraded"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}

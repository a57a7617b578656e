package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/upsearch/upsearch/internal/ratelimit"
)

// RateLimiter returns a Huma middleware that limits requests per client.
// The client key hashes IP and User-Agent together so shared NAT addresses
// do not collapse into one bucket.
func RateLimiter(api huma.API, limiter ratelimit.Limiter) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		allowed, err := limiter.Allow(ctx.Context(), clientKey(ctx))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

func clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}

package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds per-request metadata the middleware extracts from HTTP
// headers. ClientIP is the submitter address used for cooldown tracking.
type RequestMeta struct {
	ClientIP  string
	RequestID string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

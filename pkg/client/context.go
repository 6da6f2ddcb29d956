package client

import "context"

type requestIDKey struct{}

// RequestIDHeader carries the correlation ID of an operation
const RequestIDHeader = "X-Request-ID"

// WithRequestID attaches a correlation ID sent with every request made under ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation ID attached to ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

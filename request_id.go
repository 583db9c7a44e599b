package multihost

import "context"

// HeaderRequestID carries the correlation id on outgoing requests.
const HeaderRequestID = "X-Request-ID"

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// ContextWithRequestID attaches a per-call correlation id that takes
// precedence over the client's own id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the id set by ContextWithRequestID, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

func (c *Client) requestIDFor(ctx context.Context) string {
	if id, ok := RequestIDFromContext(ctx); ok {
		return id
	}
	return c.RequestID()
}

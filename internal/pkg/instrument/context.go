package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores the correlation ID in the context.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID from the context, an empty
// string when absent, or the "[invalid_chain_id]" sentinel when the stored
// value is not a string.
func GetCorrelationID(ctx context.Context) string {
	v := ctx.Value(correlationIDKey{})
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return "[invalid_chain_id]"
	}
	return s
}

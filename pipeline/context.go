package pipeline

import "context"

// operationContextKey is the context key for the operation marker.
type operationContextKey struct{}

// ContextWithOperation annotates ctx with the name of the client operation
// issuing the request. The annotation is additive: existing context values
// are untouched. The tracing, logging, and metrics policies read it.
func ContextWithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationContextKey{}, operation)
}

// OperationFromContext returns the operation marker from ctx, if set.
func OperationFromContext(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(operationContextKey{}).(string)
	return op, ok
}

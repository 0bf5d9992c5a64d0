package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// TemplateIDKey is the context key for template identifiers.
	TemplateIDKey contextKey = "template_id"

	// OperationKey is the context key for the operation name
	// ("extract", "substitute", "check").
	OperationKey contextKey = "operation"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithTemplateID adds a template identifier to the context.
func WithTemplateID(ctx context.Context, templateID string) context.Context {
	return context.WithValue(ctx, TemplateIDKey, templateID)
}

// GetTemplateID retrieves the template identifier from the context.
func GetTemplateID(ctx context.Context) string {
	if templateID, ok := ctx.Value(TemplateIDKey).(string); ok {
		return templateID
	}
	return ""
}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// GetOperation retrieves the operation name from the context.
func GetOperation(ctx context.Context) string {
	if operation, ok := ctx.Value(OperationKey).(string); ok {
		return operation
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if templateID := GetTemplateID(ctx); templateID != "" {
		fields = append(fields, "template_id", templateID)
	}
	if operation := GetOperation(ctx); operation != "" {
		fields = append(fields, "operation", operation)
	}

	return fields
}

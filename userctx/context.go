package userctx

import "context"

// Context key type
type contextKey string

const accountIDKey contextKey = "account_id"
const emailKey contextKey = "email"
const requestIDKey contextKey = "request_id"

// SetAccountID adds the authenticated account identifier to the context
func SetAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// GetAccountID retrieves the authenticated account identifier, or ""
func GetAccountID(ctx context.Context) string {
	if id, ok := ctx.Value(accountIDKey).(string); ok {
		return id
	}
	return ""
}

// SetEmail adds the verified email to the context
func SetEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// GetEmail retrieves the verified email, or ""
func GetEmail(ctx context.Context) string {
	if email, ok := ctx.Value(emailKey).(string); ok {
		return email
	}
	return ""
}

// SetRequestID adds the request correlation identifier to the context
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request correlation identifier, or ""
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

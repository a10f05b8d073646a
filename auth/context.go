package auth

import "context"

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// identityKey is the single key used to store the identity id in context.
var identityKey = contextKey{}

// WithIdentity stores the authenticated identity id in the context.
// Called by the bearer-token gate after successful verification.
func WithIdentity(ctx context.Context, identityID string) context.Context {
	return context.WithValue(ctx, identityKey, identityID)
}

// IdentityFrom retrieves the authenticated identity id from the context.
// Returns the id and true if set, or empty string and false otherwise.
func IdentityFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

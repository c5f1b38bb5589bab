package auth

import (
	"context"

	"careerconnect/internal/domain"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity attaches an authenticated user to ctx.
func WithIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFrom returns the user attached by WithIdentity, if any.
func IdentityFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(identityKey).(*domain.User)
	return user, ok && user != nil
}

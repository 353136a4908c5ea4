// Package authctx carries the authenticated caller through context.Context.
// The JWT middleware is the only writer; handlers and services read it back
// explicitly instead of reaching into the HTTP request.
package authctx

import (
	"context"

	"gymstudio/internal/domain"
)

type ctxKey string

const userKey ctxKey = "user"

type User struct {
	ID    int64
	Email string
	Role  domain.UserRole
}

func (u User) Is(role domain.UserRole) bool { return u.Role == role }

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok && u.ID != 0
}

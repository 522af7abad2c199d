package auth

import "context"

type ctxKey string

const contextUserKey ctxKey = "currentUser"

// UserFromContext returns the authenticated user injected by the auth
// middleware, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}

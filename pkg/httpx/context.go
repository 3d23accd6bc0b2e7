package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated user's ID once AuthnMiddleware has
// verified the bearer token.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	return v, ok
}

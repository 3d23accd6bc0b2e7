package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/codelane/identity/pkg/jwtx"
	"github.com/codelane/identity/pkg/slogx"
)

// TokenVerifier validates a bearer token and returns the subject user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthnMiddleware translates the Authorization bearer-header convention into
// token verification, injecting the user ID into the request context on
// success. Verification failures never crash the request; the caller is told
// to re-authenticate.
func AuthnMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			userID, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "token expired")
					return
				}
				writeBearerError(w, "token verification failed")
				log.Warn("bearer token verify failed", "err", err)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

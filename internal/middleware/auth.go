package middleware

import (
	"context"
	"net/http"

	"github.com/pieceful-app/pieceful-server/internal/config"
)

type CtxKey int

const (
	CtxAccountClaims CtxKey = iota
)

// Auth attaches parsed account claims to the request context. Requests with
// missing or invalid cookies proceed anonymously; stale cookies are cleared.
func Auth(cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseAccountClaims(r)
			if err != nil {
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxAccountClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom extracts account claims from a request context, if present.
func ClaimsFrom(ctx context.Context) (*config.AccountClaims, bool) {
	claims, ok := ctx.Value(CtxAccountClaims).(*config.AccountClaims)
	return claims, ok
}

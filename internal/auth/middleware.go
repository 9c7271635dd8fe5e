package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/markhoor-institute/markhoor-api/internal/platform/httpx"
	"github.com/markhoor-institute/markhoor-api/internal/shared"
)

type principalContextKey struct{}

// ContextWithPrincipal stores the verified principal in context.
func ContextWithPrincipal(ctx context.Context, p *PrincipalInfo) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the verified principal from context.
func PrincipalFromContext(ctx context.Context) *PrincipalInfo {
	p, _ := ctx.Value(principalContextKey{}).(*PrincipalInfo)
	return p
}

// Middleware gates routes on a verified bearer token.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireAuth verifies the Authorization header and stashes the principal in
// the request context.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		principal, err := m.Service.Verify(r.Context(), token)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("token verification failed", slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
	})
}

// RequireAdmin allows only admin principals through. It must run after
// RequireAuth.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		if principal == nil {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		if !principal.IsAdmin {
			httpx.RespondError(w, shared.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

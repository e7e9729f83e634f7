package auth

import (
	"context"
	"net/http"
	"strings"

	"dispatch/internal/entities"
	"github.com/gorilla/mux"
)

type sessionKey struct{}

type TokenParser interface {
	Parse(raw string) (*entities.Session, error)
}

func WithSession(ctx context.Context, session entities.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFromContext(ctx context.Context) (entities.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(entities.Session)
	return session, ok
}

// Middleware пропускает запрос дальше только с валидным Bearer токеном
// и кладет сессию в контекст запроса.
func Middleware(parser TokenParser) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			session, err := parser.Parse(strings.TrimSpace(raw))
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), *session)))
		})
	}
}

// RequireRole ставится после Middleware.
func RequireRole(roles ...entities.RoleType) mux.MiddlewareFunc {
	allowed := make(map[entities.RoleType]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if !allowed[session.Role] {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/minhquy1903/snapchat/internal/handlers"
	"github.com/minhquy1903/snapchat/internal/session"
)

// SessionResolver exchanges a bearer token for a session context.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Context, error)
}

type AuthMiddleware struct {
	sessions SessionResolver
}

func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the bearer token and adds the session to the request
// context. It does not reject unauthenticated requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.sessions.Resolve(r.Context(), token)
		if err != nil {
			// Invalid session, continue without one
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetSessionInContext(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests without a resolved session with 401.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.GetSessionFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

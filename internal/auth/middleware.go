package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	sessionIDKey
)

// UserID devolve o dono autenticado injetado pelo middleware.
func UserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// SessionID devolve a sessão corrente; o logout precisa dela para revogar.
func SessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionIDKey).(string)
	return v, ok
}

// WithUserID injeta o dono no contexto; exposto para os testes de handler.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Authenticator valida o Bearer token e a sessão correspondente no Redis.
type Authenticator struct {
	log      *zap.Logger
	tokens   *TokenManager
	sessions *SessionStore
}

func NewAuthenticator(log *zap.Logger, t *TokenManager, s *SessionStore) *Authenticator {
	return &Authenticator{log: log, tokens: t, sessions: s}
}

// Middleware rejeita com 401 qualquer requisição sem sessão válida e passa o
// userID adiante no contexto. O core de apostas só enxerga esse identificador.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		claims, err := a.tokens.Verify(strings.TrimPrefix(raw, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		alive, err := a.sessions.Alive(r.Context(), claims.SessionID)
		if err != nil {
			a.log.Error("session check", zap.Error(err))
			http.Error(w, "session check failed", http.StatusInternalServerError)
			return
		}
		if !alive {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}
		ctx := WithUserID(r.Context(), claims.UserID)
		ctx = context.WithValue(ctx, sessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

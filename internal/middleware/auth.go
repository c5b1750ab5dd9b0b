package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/goldtrust/wallet/internal/api/httpx"
	"github.com/goldtrust/wallet/internal/auth"
)

type ctxKey string

const (
	ctxPhoneKey ctxKey = "phone"
	ctxNameKey  ctxKey = "name"
)

func Phone(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxPhoneKey).(string)
	return v, ok
}

func Name(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxNameKey).(string)
	return v, ok
}

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Auth admits requests carrying a valid access token issued at registration
// or login.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, isRefresh, err := m.TM.ParseAny(token)
		if err != nil || isRefresh {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}
		ctx := context.WithValue(r.Context(), ctxPhoneKey, claims.Phone)
		ctx = context.WithValue(ctx, ctxNameKey, claims.Name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

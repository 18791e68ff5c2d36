package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/companion/libs/auth"
)

type ctxKey int

const ctxKeyUserID ctxKey = iota

func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyUserID).(string)
	return v
}

// requireAuth verifies the Bearer token and stashes the user id in the
// request context.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		claims, err := auth.ParseAndVerifyHS256(strings.TrimSpace(token), h.jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.Sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

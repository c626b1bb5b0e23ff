package middleware

import (
	"net/http"

	"github.com/vfg2006/campaign-reconciler-api/internal/domain"
)

// AdminOnly restringe a rota a operadores com papel admin
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok || claims.Role != domain.RoleAdmin {
				http.Error(w, "insufficient privileges", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

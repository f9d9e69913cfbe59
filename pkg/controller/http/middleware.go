package http

import (
	"net/http"
	"strings"

	"github.com/gui-far/objectboard/pkg/domain/model/auth"
)

// authMiddleware validates the bearer token for protected requests
func authMiddleware(authUC AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For NoAuthn mode or when authUC is not configured, always use
			// the anonymous user
			if authUC == nil || authUC.IsNoAuthn() {
				var token *auth.Token
				if authUC != nil {
					token, _ = authUC.ValidateToken(r.Context(), "")
				}
				if token == nil {
					token = auth.NewAnonymousToken("anonymous@localhost")
				}
				ctx := auth.ContextWithToken(r.Context(), token)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			token, err := authUC.ValidateToken(r.Context(), raw)
			if err != nil {
				http.Error(w, "Invalid authentication token", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tkowalczyk/owasp-demo-be/internal/auth"
	"github.com/tkowalczyk/owasp-demo-be/internal/http/respond"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// RequireAuth is the gate in front of every /secure endpoint that needs an
// identity. Missing token and failed verification are distinct outcomes:
// no token at all is 401, a token that does not verify is 403.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, "unauthorized: no token provided")
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				respond.Error(w, http.StatusForbidden, "forbidden: invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

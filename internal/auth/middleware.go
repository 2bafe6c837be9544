package auth

import (
	"context"
	"net/http"
)

// TokenHeader is the request header carrying the raw signed token.
// The value is the token itself, not a "Bearer "-prefixed string — this
// matches what the admin frontend sends.
const TokenHeader = "x-auth-token"

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values we store.
type contextKey string

const subjectKey contextKey = "subject"

// denied writes a 401 JSON body in the same {"error","message"} shape the
// handler package uses. http.Error would stamp text/plain on it.
func denied(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}

// RequireAdmin is the middleware guarding the admin write routes.
//
// It reads the x-auth-token header, validates the token, and stores the
// subject in the request context. A missing header and an invalid or
// expired token both stop the chain with 401, with bodies the admin
// frontend displays verbatim.
func RequireAdmin(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				denied(w, "No token, authorization denied")
				return
			}

			subject, err := tokens.Validate(tokenStr)
			if err != nil {
				denied(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated subject set by RequireAdmin.
// Returns ("", false) on routes that didn't pass through the middleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok && s != ""
}

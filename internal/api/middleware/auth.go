package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"leetboard/internal/common"
)

// CronAuth guards cron-invoked endpoints with a static shared secret,
// compared in constant time against "Authorization: Bearer <secret>".
// An empty configured secret disables the check.
func CronAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

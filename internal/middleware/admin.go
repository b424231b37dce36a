package middleware

import (
	"crypto/subtle"
	"net/http"
)

// AdminKey guards seed/admin endpoints with a static shared secret passed in
// the X-Admin-Key header. There are no user accounts; this is deploy-time
// configuration, not authentication. An empty configured key disables the
// endpoints entirely.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				http.Error(w, "Admin endpoints disabled", http.StatusForbidden)
				return
			}
			supplied := r.Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import "net/http"

// SetJSONContentType marks every response as JSON; individual handlers
// (problem writes) may override it.
func SetJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

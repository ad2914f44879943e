package middleware

import "net/http"

// BodyLimit caps the request body at maxBytes. Reads past the limit fail
// with http.MaxBytesError, which handlers surface as a client error.
func BodyLimit(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

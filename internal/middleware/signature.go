package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
)

// Signature middleware verifies the HMAC-SHA256 signature the payment form
// sends in the "Sign" header, computed over the raw request body with a
// shared secret. An empty secret disables verification entirely.
func Signature(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			sign := r.Header.Get("Sign")
			if sign == "" {
				writeError(w, http.StatusUnauthorized, "Signature required")
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Failed to read request body")
				return
			}
			// Hand the body back to downstream handlers.
			r.Body = io.NopCloser(bytes.NewReader(body))

			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write(body)
			expected := hex.EncodeToString(mac.Sum(nil))

			if !hmac.Equal([]byte(sign), []byte(expected)) {
				writeError(w, http.StatusForbidden, "Invalid signature")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes an error response in the same JSON shape handlers use.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

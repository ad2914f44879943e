package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestSignature(t *testing.T) {
	const secret = "relay-secret"
	body := []byte(`{"payment":{"orderid":"A-100"}}`)

	// Test handler echoes the body so we can check it survives verification
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(got)
	})

	tests := []struct {
		name           string
		secret         string
		sign           string
		expectedStatus int
	}{
		{
			name:           "valid signature",
			secret:         secret,
			sign:           signBody(secret, body),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing signature",
			secret:         secret,
			sign:           "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid signature",
			secret:         secret,
			sign:           signBody("wrong-secret", body),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty secret disables verification",
			secret:         "",
			sign:           "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signedHandler := Signature(tt.secret)(testHandler)

			req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
			if tt.sign != "" {
				req.Header.Set("Sign", tt.sign)
			}

			w := httptest.NewRecorder()
			signedHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if !bytes.Equal(w.Body.Bytes(), body) {
					t.Errorf("body = %s, want original body passed through", w.Body.String())
				}
				return
			}

			// Rejections use the same JSON error shape as the handlers.
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}
			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp["error"] == "" {
				t.Error("error message is empty")
			}
		})
	}
}

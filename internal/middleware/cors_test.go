package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware(DefaultCORSConfig([]string{"http://localhost:3000", "*.example.com"}))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantCreds  string
	}{
		{"allowed origin", http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000", "true"},
		{"wildcard subdomain", http.MethodGet, "https://shop.example.com", http.StatusOK, "https://shop.example.com", "true"},
		{"unknown origin", http.MethodGet, "http://evil.test", http.StatusOK, "", ""},
		{"preflight", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, "http://localhost:3000", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/course/getAllCourses", nil)
			req.Header.Set("Origin", tt.origin)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rr.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"battery-lab-api/config"

	"github.com/gin-gonic/gin"
)

func preflight(t *testing.T, cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(SetupCORS(cfg))
	r.POST("/api/materials", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/materials", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := preflight(t, config.CORSConfig{AllowedOrigins: "*"}, "http://anywhere.example")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, "*")
	}
}

func TestCORSAllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.CORSConfig{AllowedOrigins: "http://localhost:5173, http://127.0.0.1:5173"}

	tests := []struct {
		origin string
		status int
		allow  string
	}{
		{"http://localhost:5173", http.StatusNoContent, "http://localhost:5173"},
		{"http://127.0.0.1:5173", http.StatusNoContent, "http://127.0.0.1:5173"},
		{"http://evil.example", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			rec := preflight(t, cfg, tt.origin)
			if rec.Code != tt.status {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.allow {
				t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, tt.allow)
			}
		})
	}
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(nil), Metrics())
	r.GET("/api/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

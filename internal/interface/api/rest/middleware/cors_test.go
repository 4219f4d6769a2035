package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCORSRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop(), true))
	r.Use(CORS([]string{"http://localhost:5173"})...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	return r
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{name: "no origin", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "allowed origin", method: http.MethodGet, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantAllow: "http://localhost:5173"},
		{name: "same host", method: http.MethodGet, origin: "http://example.com", wantStatus: http.StatusOK},
		{name: "rejected origin", method: http.MethodGet, origin: "https://evil.test", wantStatus: http.StatusForbidden},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:5173", wantStatus: http.StatusNoContent, wantAllow: "http://localhost:5173"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			rr := httptest.NewRecorder()
			newCORSRouter().ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, rr.Body.String(), "does not allow access")
			}
		})
	}
}

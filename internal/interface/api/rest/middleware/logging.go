package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-directory-api/internal/infrastructure/metrics"
)

const maxLogBodySize = 1 << 12 // 4 KB

// RequestLogGin is the development access log. It records at most
// maxLogBodySize bytes of the body and hands the full body on to handlers.
func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			ct := c.GetHeader("Content-Type")
			if strings.HasPrefix(ct, "multipart/form-data") {
				body = "<multipart/form-data omitted>"
			} else {
				var buf bytes.Buffer
				_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
				body = buf.String()
				c.Request.Body = readCloser{
					Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body),
					Closer: c.Request.Body,
				}
			}
		}

		c.Next()

		metrics.Inc(mCounter, metrics.Requests)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.RequestURI()),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

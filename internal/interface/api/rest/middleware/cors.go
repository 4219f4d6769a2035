package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"user-directory-api/internal/apperror"
)

const corsRejected = "The CORS policy for this site does not allow access from the specified Origin."

// CORS allows exactly the listed origins. Requests without an Origin header
// and same-host requests pass through; any other origin is rejected with a
// 403 rendered by ErrorHandler.
func CORS(origins []string) []gin.HandlerFunc {
	allowed := func(origin string) bool { return lo.Contains(origins, origin) }

	guard := func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || allowed(origin) ||
			origin == "http://"+c.Request.Host || origin == "https://"+c.Request.Host {
			c.Next()
			return
		}
		_ = c.Error(apperror.New(http.StatusForbidden, corsRejected))
		c.Abort()
	}

	return []gin.HandlerFunc{
		guard,
		cors.New(cors.Config{
			AllowOriginFunc:  allowed,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	}
}

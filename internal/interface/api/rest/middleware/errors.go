package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"user-directory-api/internal/apperror"
	domain "user-directory-api/internal/domain/user"
)

type ErrorResponse struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

// Translate maps an error to its response status and message.
func Translate(err error) (int, string) {
	var (
		vErr   *domain.ValidationError
		appErr *apperror.Error
	)

	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return http.StatusBadRequest, domain.ErrEmailAlreadyExists.Error()
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.As(err, &appErr):
		return appErr.Status, appErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// ErrorHandler renders the last error attached by a handler. Handlers that
// already wrote a response are left alone.
func ErrorHandler(logger *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		renderError(c, logger, production, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into a 500 rendered like any other error.
func Recovery(logger *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = fmt.Errorf("%v", recovered)
		}
		renderError(c, logger, production, errors.WithStack(err))
	})
}

func renderError(c *gin.Context, logger *zap.Logger, production bool, err error) {
	status, msg := Translate(err)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("url", c.Request.URL.RequestURI()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	resp := ErrorResponse{Message: msg}
	if !production {
		stack := fmt.Sprintf("%+v", err)
		resp.Stack = &stack
	}

	c.AbortWithStatusJSON(status, resp)
}

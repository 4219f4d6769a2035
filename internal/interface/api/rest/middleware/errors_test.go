package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"user-directory-api/internal/apperror"
	domain "user-directory-api/internal/domain/user"
)

func TestTranslate(t *testing.T) {
	_, verr := domain.ValidateNew(domain.Fields{})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "duplicate email",
			err:        errors.WithStack(domain.ErrEmailAlreadyExists),
			wantStatus: http.StatusBadRequest,
			wantMsg:    domain.ErrEmailAlreadyExists.Error(),
		},
		{
			name:       "validation",
			err:        errors.WithStack(verr),
			wantStatus: http.StatusBadRequest,
			wantMsg:    verr.Error(),
		},
		{
			name:       "not found",
			err:        errors.WithStack(domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:       "explicit status",
			err:        apperror.New(http.StatusRequestEntityTooLarge, "File too large"),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsg:    "File too large",
		},
		{
			name:       "unmatched route",
			err:        apperror.RouteNotFound("/nope"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Not Found - /nope",
		},
		{
			name:       "anything else",
			err:        fmt.Errorf("query users: %w", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "query users: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Translate(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func newErrorRouter(logger *zap.Logger, production bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Recovery(logger, production))
	r.Use(ErrorHandler(logger, production))
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(errors.WithStack(domain.ErrNotFound))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusAccepted, "ok")
		_ = c.Error(errors.New("late"))
	})

	return r
}

func serve(r http.Handler, path string) (*httptest.ResponseRecorder, ErrorResponse) {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var resp ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	return rr, resp
}

func TestErrorHandler_Production(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newErrorRouter(zap.New(core), true)

	rr, resp := serve(r, "/fail")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "boom", resp.Message)
	assert.Nil(t, resp.Stack)
	assert.JSONEq(t, `{"message":"boom","stack":null}`, rr.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())

	rr, resp = serve(r, "/missing")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", resp.Message)
	assert.Equal(t, 1, logs.Len())
}

func TestErrorHandler_DevelopmentCarriesStack(t *testing.T) {
	r := newErrorRouter(zap.NewNop(), false)

	rr, resp := serve(r, "/missing")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.NotNil(t, resp.Stack)
	assert.Contains(t, *resp.Stack, "User not found")
	assert.Contains(t, *resp.Stack, "errors_test.go")
}

func TestRecovery(t *testing.T) {
	r := newErrorRouter(zap.NewNop(), true)

	rr, resp := serve(r, "/panic")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "kaboom", resp.Message)
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	r := newErrorRouter(zap.NewNop(), true)

	rr, _ := serve(r, "/written")
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"user-directory-api/internal/apperror"
	"user-directory-api/internal/application/ports"
	"user-directory-api/internal/interface/api/rest/middleware"
)

const (
	DefaultRequestTimeout = 20 * time.Second

	timeoutBody = `{"message":"Response timeout","stack":null}`
	rootBody    = "API is running..."
)

// Options is read once by NewHandler.
type Options struct {
	Production     bool
	CORSOrigins    []string
	UploadDir      string
	UploadPrefix   string
	RequestTimeout time.Duration
}

type Deps struct {
	Logger        *zap.Logger
	UserService   ports.UserService
	ExportService ports.ExportService
	Storage       ports.FileStorage
	Counter       *prometheus.CounterVec
	Gatherer      prometheus.Gatherer
}

// NewHandler assembles the HTTP API. Every request runs under
// opts.RequestTimeout; when it expires the client gets a single 503 and the
// request context is cancelled.
func NewHandler(opts Options, deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger, opts.Production))
	r.Use(middleware.ErrorHandler(deps.Logger, opts.Production))
	if !opts.Production {
		r.Use(middleware.RequestLogGin(deps.Logger, deps.Counter))
	}
	r.Use(middleware.CORS(opts.CORSOrigins)...)

	NewUserController(r, deps.UserService, deps.ExportService, deps.Storage, deps.Logger)

	if opts.UploadPrefix != "" && opts.UploadDir != "" {
		r.Static(opts.UploadPrefix, opts.UploadDir)
	}

	r.GET(RouteRoot, func(c *gin.Context) { c.String(http.StatusOK, rootBody) })

	// ops
	r.GET(RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET(RouteMetrics, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.RouteNotFound(c.Request.URL.RequestURI()))
	})

	th := http.TimeoutHandler(r, opts.RequestTimeout, timeoutBody)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		th.ServeHTTP(&timeoutWriter{ResponseWriter: w}, req)
	})
}

// timeoutWriter labels the bare 503 body written by http.TimeoutHandler as
// JSON. Responses that already carry a content type pass through unchanged.
type timeoutWriter struct {
	http.ResponseWriter
}

func (w *timeoutWriter) WriteHeader(code int) {
	h := w.Header()
	if code == http.StatusServiceUnavailable && h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json; charset=utf-8")
	}
	w.ResponseWriter.WriteHeader(code)
}

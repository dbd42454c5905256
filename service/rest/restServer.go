package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/p1nant0m/ircpump/internal/pump"
	"github.com/p1nant0m/ircpump/internal/pump/store"
	"github.com/p1nant0m/ircpump/service/rest/controller/health"
	"github.com/p1nant0m/ircpump/service/rest/controller/v1/line"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RouterOptions collects what the read API serves. Metrics and QueueLen are
// optional.
type RouterOptions struct {
	Store    store.Factory
	Database string
	Metrics  *pump.Metrics
	QueueLen func() int
}

func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	r.GET("/healthz", health.NewHealthController(opts.QueueLen).Get)

	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	lines := line.NewLineController(opts.Store, opts.Database)
	v1 := r.Group("/v1")
	{
		v1.GET("/lines", lines.List)
	}

	return r
}

// RunRestServer serves the router until it fails. The caller decides
// whether that matters; the pipeline does not depend on it.
func RunRestServer(addr string, router http.Handler) error {
	logrus.WithField("addr", addr).Info("rest server listening")
	return http.ListenAndServe(addr, router)
}

// requestID tags every request with an id, reusing one sent by the client.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

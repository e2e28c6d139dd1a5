package routes

import (
	"net/http"

	"jobtrack/commons/handler"
	"jobtrack/internal/logger"
	"jobtrack/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	// MetricsGatherer is served on /metrics when set
	MetricsGatherer prometheus.Gatherer
}

type RouteDependencies struct {
	Logger   logger.Logger
	Recorder metrics.Recorder
	Verifier *handler.TokenVerifier
}

type RouteOptions[InputDto any, OutputDto any] struct {
	Path        string
	Method      string
	ServiceFunc handler.ServiceFunc[InputDto, OutputDto]
	RequireAuth bool
	// SuccessStatus defaults to 200
	SuccessStatus int
}

func NewRouter(config RouterConfig, deps RouteDependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true

	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NewNoopRecorder()
	}

	// Add global middlewares
	r.Use(handler.RequestIDMiddleware())
	r.Use(handler.LoggingMiddleware(deps.Logger))
	r.Use(handler.ErrorHandlingMiddleware(deps.Logger))
	r.Use(handler.CORSMiddleware(config.AllowedOrigins))
	r.Use(handler.MetricsMiddleware(recorder))

	// Set custom handlers for routing errors
	r.NoRoute(handler.NoRouteHandler())
	r.NoMethod(handler.NoMethodHandler())

	if config.MetricsGatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(config.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	return r
}

func RegisterRoute[InputDto any, OutputDto any](
	group gin.IRouter,
	deps RouteDependencies,
	options RouteOptions[InputDto, OutputDto],
) {
	handlerDeps := handler.HandlerDependencies{
		Logger: deps.Logger,
	}

	handlers := make([]gin.HandlerFunc, 0, 2)
	if options.RequireAuth {
		if deps.Verifier == nil {
			deps.Logger.Error("route requires auth but no token verifier is configured",
				logger.String("path", options.Path))
			return
		}
		handlers = append(handlers, handler.AuthMiddleware(deps.Verifier, deps.Logger))
	}
	handlers = append(handlers, handler.HandleFunc(handlerDeps, options.ServiceFunc, options.SuccessStatus))

	switch options.Method {
	case http.MethodGet:
		group.GET(options.Path, handlers...)
	case http.MethodPost:
		group.POST(options.Path, handlers...)
	case http.MethodPut:
		group.PUT(options.Path, handlers...)
	case http.MethodDelete:
		group.DELETE(options.Path, handlers...)
	case http.MethodPatch:
		group.PATCH(options.Path, handlers...)
	default:
		deps.Logger.Error("unsupported HTTP method",
			logger.String("method", options.Method),
			logger.String("path", options.Path))
	}
}

func CreateAPIGroup(router *gin.Engine, version string) *gin.RouterGroup {
	return router.Group("/api/" + version)
}

package config

import (
	"context"
	"jobtrack/commons/routes"
	cache "jobtrack/internal/cache/iface"
	redisCache "jobtrack/internal/cache/redis"
	"jobtrack/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx/fxevent"
)

// NewLogger builds the application logger for the given mode
func NewLogger(production bool) (logger.Logger, error) {
	if production {
		return logger.NewZapLogger()
	}
	return logger.NewZapLoggerForDev()
}

// ProvideFxLogger creates the FX event logger using the application logger
func ProvideFxLogger(log logger.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{
		Logger: log.(*logger.ZapLogger).Logger(),
	}
}

// ProvideRouter creates and configures the Gin router with all routes
func ProvideRouter(
	config routes.RouterConfig,
	deps routes.RouteDependencies,
	routeInitializer func(*gin.Engine, routes.RouteDependencies),
) *gin.Engine {
	router := routes.NewRouter(config, deps)
	routeInitializer(router, deps)
	return router
}

// NewDynamoDBClient builds a DynamoDB client. A non-empty endpoint points
// it at DynamoDB Local or LocalStack.
func NewDynamoDBClient(ctx context.Context, endpoint, region string) (*awsdynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return awsdynamodb.NewFromConfig(cfg, func(o *awsdynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// NewRedisCache connects to Redis. Caching is optional, so a failed
// connection is logged and yields a nil cache.
func NewRedisCache(addr, password string, db int, log logger.Logger) cache.Cache {
	c, err := redisCache.NewRedisCache(addr, password, db, log)
	if err != nil {
		log.Warn("redis unavailable, stats cache disabled",
			logger.String("addr", addr),
			logger.Error(err))
		return nil
	}
	return c
}

// NewMetricsRegistry returns a registry with the Go runtime and process
// collectors already registered
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

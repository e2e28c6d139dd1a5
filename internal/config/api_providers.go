package config

import (
	"context"
	"database/sql"
	"fmt"

	commonConfig "jobtrack/commons/config"
	commonHandler "jobtrack/commons/handler"
	"jobtrack/commons/routes"
	"jobtrack/commons/server"
	cache "jobtrack/internal/cache/iface"
	"jobtrack/internal/handler"
	"jobtrack/internal/logger"
	"jobtrack/internal/metrics"
	"jobtrack/internal/repository/dynamodb"
	repository "jobtrack/internal/repository/iface"
	"jobtrack/internal/repository/instrumented"
	"jobtrack/internal/repository/memory"
	"jobtrack/internal/repository/mysql"
	internalRoutes "jobtrack/internal/routes"
	"jobtrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const serviceName = "jobtrack"

// ProvideAppConfig loads configuration from file and environment
func ProvideAppConfig() (AppConfig, error) {
	return Load()
}

func ProvideLogger(cfg AppConfig) (logger.Logger, error) {
	return commonConfig.NewLogger(cfg.Log.Mode == LogModeProduction)
}

// Metrics Providers

type MetricsResult struct {
	fx.Out
	Recorder metrics.Recorder
	Gatherer prometheus.Gatherer
}

// ProvideMetrics builds the Prometheus recorder, or a no-op recorder and
// no gatherer when metrics are disabled
func ProvideMetrics(cfg AppConfig, log logger.Logger) MetricsResult {
	if !cfg.Metrics.Enabled {
		return MetricsResult{Recorder: metrics.NewNoopRecorder()}
	}

	reg := commonConfig.NewMetricsRegistry()
	return MetricsResult{
		Recorder: metrics.NewPrometheusRecorder(reg, log),
		Gatherer: reg,
	}
}

// Repository Providers

func ProvideJobRepository(
	lc fx.Lifecycle,
	cfg AppConfig,
	recorder metrics.Recorder,
	log logger.Logger,
) (repository.JobRepository, error) {
	var repo repository.JobRepository

	switch cfg.Storage.Driver {
	case DriverDynamoDB:
		dynamoCfg := cfg.Storage.DynamoDB
		client, err := commonConfig.NewDynamoDBClient(context.Background(), dynamoCfg.Endpoint, dynamoCfg.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		if dynamoCfg.Endpoint != "" {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return dynamodb.EnsureTable(ctx, client, dynamoCfg.Table, log)
				},
			})
		}
		repo = dynamodb.NewJobRepository(client, dynamoCfg.Table, log)

	case DriverMySQL:
		db, err := mysql.Open(context.Background(), cfg.Storage.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		manageMySQL(lc, db, log)
		repo = mysql.NewJobRepository(db, log)

	case DriverMemory:
		log.Warn("using in-memory job storage; records are lost on restart")
		repo = memory.NewJobRepository(log)

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	log.Info("job storage configured", logger.String("driver", cfg.Storage.Driver))
	return instrumented.NewJobRepository(repo, recorder), nil
}

func manageMySQL(lc fx.Lifecycle, db *sql.DB, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mysql.EnsureSchema(ctx, db)
		},
		OnStop: func(ctx context.Context) error {
			log.Info("closing mysql connection pool")
			return db.Close()
		},
	})
}

// ProvideStatsCache returns the Redis stats cache, or nil when disabled
func ProvideStatsCache(lc fx.Lifecycle, cfg AppConfig, log logger.Logger) cache.Cache {
	if !cfg.CacheEnabled() {
		log.Info("stats cache disabled")
		return nil
	}

	c := commonConfig.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
	if c != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return c.Close()
			},
		})
	}
	return c
}

// Service Providers

func ProvideStatsService(
	repo repository.JobRepository,
	c cache.Cache,
	cfg AppConfig,
	recorder metrics.Recorder,
	log logger.Logger,
) service.StatsService {
	return service.NewStatsService(repo, c, cfg.Redis.StatsTTL, recorder, log, nil)
}

func ProvideJobService(
	repo repository.JobRepository,
	stats service.StatsService,
	log logger.Logger,
) service.JobService {
	return service.NewJobService(repo, stats, log, nil)
}

// HTTP Providers

func ProvideHealthHandler(log logger.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(log, serviceName)
}

func ProvideJobHandler(
	log logger.Logger,
	jobService service.JobService,
	statsService service.StatsService,
) *handler.JobHandler {
	return handler.NewJobHandler(log, jobService, statsService)
}

func ProvideRouteDependencies(cfg AppConfig, recorder metrics.Recorder, log logger.Logger) routes.RouteDependencies {
	return routes.RouteDependencies{
		Logger:   log,
		Recorder: recorder,
		Verifier: commonHandler.NewTokenVerifier(cfg.Auth.JWTSecret),
	}
}

type routerConfigParams struct {
	fx.In
	Config   AppConfig
	Gatherer prometheus.Gatherer `optional:"true"`
}

func ProvideRouterConfig(p routerConfigParams) routes.RouterConfig {
	return routes.RouterConfig{
		ServiceName:     serviceName,
		Version:         "v1",
		AllowedOrigins:  p.Config.CORS.AllowedOrigins,
		MetricsGatherer: p.Gatherer,
	}
}

func ProvideServerConfig(cfg AppConfig) server.ServerConfig {
	return server.ServerConfig{
		Port: cfg.HTTP.Port,
	}
}

func ProvideRouteInitializer(
	healthHandler *handler.HealthHandler,
	jobHandler *handler.JobHandler,
) func(*gin.Engine, routes.RouteDependencies) {
	return func(router *gin.Engine, deps routes.RouteDependencies) {
		internalRoutes.InitHealthRoutes(router, healthHandler, deps)
		internalRoutes.InitJobRoutes(router, jobHandler, deps)
	}
}

// Lifecycle Management

// ManageLoggerLifecycle flushes buffered log entries on shutdown
func ManageLoggerLifecycle(lc fx.Lifecycle, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
}

// Module bundles every provider of the API process
func Module() fx.Option {
	return fx.Module("jobtrack",
		fx.Provide(
			ProvideAppConfig,
			ProvideLogger,
			ProvideMetrics,
			ProvideJobRepository,
			ProvideStatsCache,
			ProvideStatsService,
			ProvideJobService,
			ProvideHealthHandler,
			ProvideJobHandler,
			ProvideRouteDependencies,
			ProvideRouterConfig,
			ProvideServerConfig,
			ProvideRouteInitializer,
			commonConfig.ProvideRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(ManageLoggerLifecycle),
	)
}

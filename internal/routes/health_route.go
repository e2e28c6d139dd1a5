package routes

import (
	"net/http"

	"jobtrack/commons/routes"
	"jobtrack/internal/dto"
	"jobtrack/internal/handler"

	"github.com/gin-gonic/gin"
)

func InitHealthRoutes(
	router *gin.Engine,
	healthHandler *handler.HealthHandler,
	deps routes.RouteDependencies,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.HealthCheckRequest, dto.HealthCheckResponse]{
			Path:        "/health",
			Method:      http.MethodGet,
			ServiceFunc: healthHandler.HealthService,
			RequireAuth: false,
		},
	)
}

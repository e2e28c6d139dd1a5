package routes

import (
	"net/http"

	"jobtrack/commons/routes"
	"jobtrack/internal/dto"
	"jobtrack/internal/handler"

	"github.com/gin-gonic/gin"
)

func InitJobRoutes(
	router *gin.Engine,
	jobHandler *handler.JobHandler,
	deps routes.RouteDependencies,
) {
	apiV1 := routes.CreateAPIGroup(router, "v1")

	// Register create job route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.JobRequest, *dto.JobResponse]{
			Path:          "/jobs",
			Method:        http.MethodPost,
			ServiceFunc:   jobHandler.CreateJobService,
			RequireAuth:   true,
			SuccessStatus: http.StatusCreated,
		},
	)

	// Register list jobs route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.ListJobsRequest, *dto.ListJobsResponse]{
			Path:        "/jobs",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.ListJobsService,
			RequireAuth: true,
		},
	)

	// Register stats route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.StatsRequest, *dto.StatsResponse]{
			Path:        "/jobs/stats",
			Method:      http.MethodGet,
			ServiceFunc: jobHandler.ShowStatsService,
			RequireAuth: true,
		},
	)

	// Register update job route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.JobRequest, *dto.JobResponse]{
			Path:        "/jobs/:id",
			Method:      http.MethodPatch,
			ServiceFunc: jobHandler.UpdateJobService,
			RequireAuth: true,
		},
	)

	// Register delete job route
	routes.RegisterRoute(
		apiV1,
		deps,
		routes.RouteOptions[dto.DeleteJobRequest, *dto.DeleteJobResponse]{
			Path:        "/jobs/:id",
			Method:      http.MethodDelete,
			ServiceFunc: jobHandler.DeleteJobService,
			RequireAuth: true,
		},
	)
}

package handler

import (
	"context"

	"jobtrack/commons/error_handler"
	"jobtrack/commons/handler"
	"jobtrack/internal/dto"
	"jobtrack/internal/logger"
	"jobtrack/internal/query"
	"jobtrack/internal/service"
)

const jobRemovedMessage = "Success! Job removed"

type JobHandler struct {
	logger       logger.Logger
	jobService   service.JobService
	statsService service.StatsService
}

func NewJobHandler(
	log logger.Logger,
	jobService service.JobService,
	statsService service.StatsService,
) *JobHandler {
	return &JobHandler{
		logger:       log.With(logger.String("component", "job_handler")),
		jobService:   jobService,
		statsService: statsService,
	}
}

func toJobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{
		JobName:   req.JobName,
		JobNumber: req.JobNumber,
		Client:    req.Client,
		JobType:   req.JobType,
		Status:    req.Status,
		Date:      req.Date,
		Amount:    req.Amount,
	}
}

func (h *JobHandler) CreateJobService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.JobRequest],
) (*dto.JobResponse, *error_handler.ErrorCollection) {
	job, err := h.jobService.Create(ctx, ioutil.Actor, toJobInput(ioutil.Body))
	if err != nil {
		return nil, toErrorCollection(ctx, h.logger, "create_job", err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (h *JobHandler) ListJobsService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.ListJobsRequest],
) (*dto.ListJobsResponse, *error_handler.ErrorCollection) {
	q := ioutil.QueryParams
	params := query.ListParams{
		Search:    q["search"],
		Client:    q["client"],
		JobNumber: q["jobNumber"],
		Status:    q["status"],
		JobType:   q["jobType"],
		Sort:      q["sort"],
		StartDate: q["startDate"],
		EndDate:   q["endDate"],
		Page:      q["page"],
		Limit:     q["limit"],
	}

	res, err := h.jobService.List(ctx, params)
	if err != nil {
		return nil, toErrorCollection(ctx, h.logger, "list_jobs", err)
	}

	resp := dto.NewListJobsResponse(res)
	return &resp, nil
}

func (h *JobHandler) UpdateJobService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.JobRequest],
) (*dto.JobResponse, *error_handler.ErrorCollection) {
	job, err := h.jobService.Update(ctx, ioutil.Actor, ioutil.PathParams["id"], toJobInput(ioutil.Body))
	if err != nil {
		return nil, toErrorCollection(ctx, h.logger, "update_job", err)
	}

	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (h *JobHandler) DeleteJobService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.DeleteJobRequest],
) (*dto.DeleteJobResponse, *error_handler.ErrorCollection) {
	if err := h.jobService.Delete(ctx, ioutil.Actor, ioutil.PathParams["id"]); err != nil {
		return nil, toErrorCollection(ctx, h.logger, "delete_job", err)
	}

	return &dto.DeleteJobResponse{Msg: jobRemovedMessage}, nil
}

func (h *JobHandler) ShowStatsService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.StatsRequest],
) (*dto.StatsResponse, *error_handler.ErrorCollection) {
	report, err := h.statsService.Stats(ctx)
	if err != nil {
		return nil, toErrorCollection(ctx, h.logger, "show_stats", err)
	}

	resp := dto.NewStatsResponse(report)
	return &resp, nil
}

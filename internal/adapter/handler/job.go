package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/errors"
	"github.com/johnquangdev/meeting-actions/internal/adapter/dto/common"
	jobdto "github.com/johnquangdev/meeting-actions/internal/adapter/dto/job"
	"github.com/johnquangdev/meeting-actions/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-actions/internal/usecase/errors"
	jobUsecase "github.com/johnquangdev/meeting-actions/internal/usecase/job"
	pkgvalidator "github.com/johnquangdev/meeting-actions/pkg/validator"
)

// Job handles job-related HTTP requests
type Job struct {
	jobService jobUsecase.Service
	logger     *zap.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService jobUsecase.Service, logger *zap.Logger) *Job {
	return &Job{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJob handles POST /jobs
// @Summary      Submit a transcript for analysis
// @Description  Creates a Pending job; the worker analyzes Text jobs asynchronously
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        request  body      job.CreateJobRequest  true  "Job submission"
// @Success      201      {object}  job.CreateJobResponse  "Job accepted"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request or validation failed"
// @Failure      500      {object}  common.ErrorResponse  "Failed to create job"
// @Router       /jobs [post]
func (h *Job) CreateJob(c echo.Context) error {
	var req jobdto.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(pkgvalidator.Message(err)))
	}

	job, err := h.jobService.CreateJob(c.Request().Context(), presenter.ToCreateJobInput(&req))
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, ""))
	}

	location := strings.TrimSuffix(c.Request().URL.Path, "/") + "/" + job.ID.String()
	c.Response().Header().Set(echo.HeaderLocation, location)
	return HandleSuccess(h.logger, c, http.StatusCreated, jobdto.CreateJobResponse{JobID: job.ID.String()})
}

// GetJob handles GET /jobs/:jobId
// @Summary      Get job status
// @Description  Returns the job's status, timestamps and failure message
// @Tags         Jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID (UUID)"
// @Success      200    {object}  job.JobStatusResponse  "Job status"
// @Failure      404    {object}  common.ErrorResponse  "Job not found"
// @Router       /jobs/{jobId} [get]
func (h *Job) GetJob(c echo.Context) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrJobNotFound(c.Param("jobId")))
	}

	job, err := h.jobService.GetJob(c.Request().Context(), jobID)
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, jobID.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToJobStatusResponse(job))
}

// GetJobResult handles GET /jobs/:jobId/result
// @Summary      Get job result
// @Description  Returns the analysis JSON of a Done job
// @Tags         Jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID (UUID)"
// @Success      200    {object}  job.JobResultResponse  "Analysis result"
// @Failure      404    {object}  common.ErrorResponse  "Job or result not found"
// @Failure      409    {object}  common.ErrorResponse  "Job is not completed; status holds the current state"
// @Router       /jobs/{jobId}/result [get]
func (h *Job) GetJobResult(c echo.Context) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrJobNotFound(c.Param("jobId")))
	}

	out, err := h.jobService.GetResult(c.Request().Context(), jobID)
	if err != nil {
		return HandleError(h.logger, c, h.mapError(err, jobID.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToJobResultResponse(out))
}

// DevComplete handles POST /jobs/:jobId/_dev/complete
// @Summary      Complete a job manually (development only)
// @Description  Stores resultJson as the job's result and marks it Done
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Param        jobId    path      string                  true  "Job ID (UUID)"
// @Param        request  body      job.DevCompleteRequest  true  "Result to store"
// @Success      200      {object}  common.MessageResponse  "Job completed"
// @Failure      400      {object}  common.ErrorResponse  "Invalid result JSON"
// @Failure      404      {object}  common.ErrorResponse  "Job not found"
// @Failure      409      {object}  common.ErrorResponse  "Job already has a result or is Failed"
// @Router       /jobs/{jobId}/_dev/complete [post]
func (h *Job) DevComplete(c echo.Context) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrJobNotFound(c.Param("jobId")))
	}

	var req jobdto.DevCompleteRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(pkgvalidator.Message(err)))
	}

	if err := h.jobService.DevComplete(c.Request().Context(), jobID, req.ResultJSON); err != nil {
		return HandleError(h.logger, c, h.mapError(err, jobID.String()))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, common.MessageResponse{Message: "Job completed"})
}

// parseJobID reads the jobId path parameter; malformed ids are reported as not found
func parseJobID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// mapError translates usecase and domain errors into AppErrors
func (h *Job) mapError(err error, jobID string) error {
	var validationErr *entities.ValidationError
	var statusErr *usecaseErrors.StatusError
	status := ""
	if stdErrors.As(err, &statusErr) {
		status = statusErr.Status
	}

	switch {
	case stdErrors.As(err, &validationErr):
		return errors.ErrValidation(validationErr.Message)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidResultJSON):
		return errors.ErrValidation("resultJson must be valid JSON")
	case stdErrors.Is(err, usecaseErrors.ErrJobNotFound):
		return errors.ErrJobNotFound(jobID)
	case stdErrors.Is(err, usecaseErrors.ErrResultNotFound):
		return errors.ErrResultNotFound(jobID)
	case stdErrors.Is(err, usecaseErrors.ErrJobNotCompleted):
		return errors.ErrJobNotCompleted(status)
	case stdErrors.Is(err, usecaseErrors.ErrJobHasResult):
		return errors.ErrJobAlreadyHasResult(jobID)
	case stdErrors.Is(err, usecaseErrors.ErrJobInvalidState):
		return errors.ErrJobInvalidState(jobID, status)
	default:
		return errors.ErrInternal(err)
	}
}

package presenter

import (
	jobdto "github.com/johnquangdev/meeting-actions/internal/adapter/dto/job"
	"github.com/johnquangdev/meeting-actions/internal/domain/entities"
	jobUsecase "github.com/johnquangdev/meeting-actions/internal/usecase/job"
)

// ToCreateJobInput converts a validated request to usecase input
func ToCreateJobInput(req *jobdto.CreateJobRequest) jobUsecase.CreateJobInput {
	input := jobUsecase.CreateJobInput{
		MeetingType:    req.MeetingType,
		TranscriptText: req.TranscriptText,
	}
	if req.InputType != nil {
		input.InputType = entities.InputType(*req.InputType)
	}
	return input
}

// ToJobStatusResponse converts a Job entity to JobStatusResponse DTO
func ToJobStatusResponse(j *entities.Job) *jobdto.JobStatusResponse {
	if j == nil {
		return nil
	}

	return &jobdto.JobStatusResponse{
		JobID:        j.ID.String(),
		Status:       int(j.Status),
		CreatedAtUTC: j.CreatedAtUTC.UTC(),
		UpdatedAtUTC: j.UpdatedAtUTC.UTC(),
		ErrorMessage: j.ErrorMessage,
	}
}

// ToJobResultResponse converts a stored result to JobResultResponse DTO
func ToJobResultResponse(out *jobUsecase.ResultOutput) *jobdto.JobResultResponse {
	if out == nil {
		return nil
	}

	return &jobdto.JobResultResponse{
		JobID:      out.JobID.String(),
		ResultJSON: out.ResultJSON,
	}
}

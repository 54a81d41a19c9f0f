package job

// CreateJobRequest represents the request to submit a transcript for analysis
type CreateJobRequest struct {
	MeetingType    string  `json:"meetingType" validate:"notblank,max=30"`
	InputType      *int    `json:"inputType" validate:"required,min=0,max=2"` // 0 Text, 1 Audio, 2 Video
	TranscriptText *string `json:"transcriptText,omitempty"`
}

// DevCompleteRequest represents a manual result for a job
type DevCompleteRequest struct {
	ResultJSON string `json:"resultJson" validate:"required"`
}

package entities

import (
	"encoding/json"
	"fmt"
)

// Analysis categories named in the model's output contract
const (
	CategoryDecisions     = "decisions"
	CategoryActions       = "actions"
	CategoryImplicitDates = "implicitDates"
	CategoryRisks         = "risks"
	CategoryOpenQuestions = "openQuestions"
)

// AnalysisCategories lists the categories in prompt order
var AnalysisCategories = []string{
	CategoryDecisions,
	CategoryActions,
	CategoryImplicitDates,
	CategoryRisks,
	CategoryOpenQuestions,
}

// AnalysisResult is a typed view of a result document.
// The stored result stays the model's JSON verbatim; this view is only read.
type AnalysisResult struct {
	Decisions     []string `json:"decisions"`
	Actions       []string `json:"actions"`
	ImplicitDates []string `json:"implicitDates"`
	Risks         []string `json:"risks"`
	OpenQuestions []string `json:"openQuestions"`
}

// ParseAnalysisResult decodes resultJSON into an AnalysisResult.
// Missing categories are left empty; unknown keys are ignored.
func ParseAnalysisResult(resultJSON string) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}
	return &result, nil
}

// Counts returns the number of items per category
func (r *AnalysisResult) Counts() map[string]int {
	return map[string]int{
		CategoryDecisions:     len(r.Decisions),
		CategoryActions:       len(r.Actions),
		CategoryImplicitDates: len(r.ImplicitDates),
		CategoryRisks:         len(r.Risks),
		CategoryOpenQuestions: len(r.OpenQuestions),
	}
}

// IsEmpty reports whether no category holds an item
func (r *AnalysisResult) IsEmpty() bool {
	for _, n := range r.Counts() {
		if n > 0 {
			return false
		}
	}
	return true
}

package dto

import "time"

// JourneyStepResponse un paso del recorrido de puesta en marcha.
type JourneyStepResponse struct {
	StepKey     string     `json:"step_key"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// JourneyResponse el recorrido completo con el avance porcentual.
type JourneyResponse struct {
	Steps       []JourneyStepResponse `json:"steps"`
	Completed   int                   `json:"completed"`
	Total       int                   `json:"total"`
	ProgressPct int                   `json:"progress_pct"`
}

// UpdateJourneyStepRequest body de PUT /api/journey/:step.
type UpdateJourneyStepRequest struct {
	Done bool `json:"done"`
}

package transport

import "time"

type SubmitValidationRequest struct {
	InterviewPassed       *bool          `json:"interview_passed"`
	BackgroundCheckPassed *bool          `json:"background_check_passed"`
	AgeRequirementMet     *bool          `json:"age_requirement_met"`
	AdditionalCriteria    map[string]any `json:"additional_criteria"`
	Notes                 string         `json:"notes" validate:"max=2000"`
	// OpenedAt is when the reviewer opened the form.
	OpenedAt *time.Time `json:"opened_at"`
}

type ValidationRecordResponse struct {
	ID                        int64          `json:"id"`
	LeadID                    int64          `json:"lead_id"`
	InterviewPassed           *bool          `json:"interview_passed"`
	BackgroundCheckPassed     *bool          `json:"background_check_passed"`
	AgeRequirementMet         *bool          `json:"age_requirement_met"`
	AdditionalCriteria        map[string]any `json:"additional_criteria"`
	Status                    string         `json:"status"`
	ValidationDurationSeconds int64          `json:"validation_duration_seconds"`
	ValidatedBy               *string        `json:"validated_by,omitempty"`
	Notes                     *string        `json:"notes,omitempty"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
}

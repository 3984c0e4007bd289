// Package domain holds the custodio validation decision rule.
package domain

// Status is the derived outcome of a validation record.
type Status string

const (
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Criteria are the critical checks of a validation pass. A nil pointer means
// the reviewer left the check unanswered.
type Criteria struct {
	InterviewPassed       *bool `json:"interview_passed"`
	BackgroundCheckPassed *bool `json:"background_check_passed"`
	AgeRequirementMet     *bool `json:"age_requirement_met"`
}

// Decide approves only when all three checks are explicitly true. An explicit
// false or any unanswered check rejects.
func Decide(c Criteria) Status {
	checks := []*bool{c.InterviewPassed, c.BackgroundCheckPassed, c.AgeRequirementMet}

	for _, check := range checks {
		if check != nil && !*check {
			return StatusRejected
		}
	}
	for _, check := range checks {
		if check == nil {
			return StatusRejected
		}
	}
	return StatusApproved
}

// Complete reports whether every check has an answer.
func (c Criteria) Complete() bool {
	return c.InterviewPassed != nil && c.BackgroundCheckPassed != nil && c.AgeRequirementMet != nil
}

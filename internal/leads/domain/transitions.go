package domain

import "strings"

// CallOutcome is the result an agent or the voice automation records for a call.
type CallOutcome string

const (
	OutcomeContacted     CallOutcome = "contactado"
	OutcomeInterested    CallOutcome = "interesado"
	OutcomeNotInterested CallOutcome = "no_interesado"
	OutcomeCallback      CallOutcome = "volver_a_llamar"
	OutcomeNoAnswer      CallOutcome = "no_contesta"
	OutcomeVoicemail     CallOutcome = "buzon"
	OutcomeWrongNumber   CallOutcome = "numero_equivocado"
)

// Outcomes where a person was actually reached.
var contactOutcomes = map[CallOutcome]struct{}{
	OutcomeContacted:     {},
	OutcomeInterested:    {},
	OutcomeNotInterested: {},
	OutcomeCallback:      {},
}

var knownOutcomes = map[CallOutcome]struct{}{
	OutcomeContacted:     {},
	OutcomeInterested:    {},
	OutcomeNotInterested: {},
	OutcomeCallback:      {},
	OutcomeNoAnswer:      {},
	OutcomeVoicemail:     {},
	OutcomeWrongNumber:   {},
}

// ParseCallOutcome normalises outcome text. ok is false for unknown outcomes.
func ParseCallOutcome(raw string) (CallOutcome, bool) {
	outcome := CallOutcome(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := knownOutcomes[outcome]
	return outcome, ok
}

// IsContact reports whether the outcome means someone answered.
func (o CallOutcome) IsContact() bool {
	_, ok := contactOutcomes[o]
	return ok
}

// InitialStatus is the status of every lead created by intake.
func InitialStatus() LeadStatus {
	return StatusNuevo
}

// InitialStage is the board column of every lead created by intake.
func InitialStage() Stage {
	return StageProspecto
}

// StatusAfterCallOutcome returns the status a lead should have after a call.
// Contact outcomes move the lead to Contactado unless it is already closed;
// every other outcome leaves the status untouched.
func StatusAfterCallOutcome(current LeadStatus, outcome CallOutcome) LeadStatus {
	if !outcome.IsContact() || current.IsClosed() {
		return current
	}
	return StatusContactado
}

// ValidateProspect is the status set by the worklist validate action.
// There is no transition back out of it.
func ValidateProspect() LeadStatus {
	return StatusValidado
}

// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"custodios_crm/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a lead enters the CRM through intake.
type LeadCreated struct {
	BaseEvent
	LeadID int64  `json:"leadId"`
	Source string `json:"source"`
	Nombre string `json:"nombre"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published whenever estado changes, whoever changed it.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    int64  `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
	Reason    string `json:"reason,omitempty"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// LeadStageChanged is published when a card moves between board columns.
type LeadStageChanged struct {
	BaseEvent
	LeadID   int64  `json:"leadId"`
	OldStage string `json:"oldStage"`
	NewStage string `json:"newStage"`
}

func (e LeadStageChanged) EventName() string { return "leads.stage.changed" }

// =============================================================================
// Prospect / Validation Domain Events
// =============================================================================

// ProspectValidated is published when a prospect is marked Validado from the worklist.
type ProspectValidated struct {
	BaseEvent
	LeadID int64 `json:"leadId"`
}

func (e ProspectValidated) EventName() string { return "prospects.validated" }

// ValidationSubmitted is published after a validation record is persisted.
type ValidationSubmitted struct {
	BaseEvent
	RecordID        int64  `json:"recordId"`
	LeadID          int64  `json:"leadId"`
	Status          string `json:"status"`
	DurationSeconds int64  `json:"durationSeconds"`
}

func (e ValidationSubmitted) EventName() string { return "validation.submitted" }

// =============================================================================
// Call Domain Events
// =============================================================================

// CallInitiated is published after the call automation webhook accepted a request.
type CallInitiated struct {
	BaseEvent
	LeadID int64  `json:"leadId"`
	Phone  string `json:"phone"`
}

func (e CallInitiated) EventName() string { return "calls.initiated" }

// CallOutcomeRecorded is published by the worker once a call outcome is stored.
type CallOutcomeRecorded struct {
	BaseEvent
	CallLogID int64  `json:"callLogId"`
	LeadID    *int64 `json:"leadId,omitempty"`
	Outcome   string `json:"outcome"`
}

func (e CallOutcomeRecorded) EventName() string { return "calls.outcome.recorded" }

package adapters

import (
	"context"

	callsservice "custodios_crm/internal/calls/service"
	leadsservice "custodios_crm/internal/leads/service"
)

// LeadCallDirectory adapts the leads service for use by the calls domain.
// It implements calls/service.LeadDirectory.
type LeadCallDirectory struct {
	leads *leadsservice.Service
}

// NewLeadCallDirectory creates a new adapter that wraps the leads service.
func NewLeadCallDirectory(leads *leadsservice.Service) *LeadCallDirectory {
	return &LeadCallDirectory{leads: leads}
}

// GetCallTarget returns the name and raw phone of a lead.
func (a *LeadCallDirectory) GetCallTarget(ctx context.Context, leadID int64) (callsservice.CallTarget, error) {
	lead, err := a.leads.Get(ctx, leadID)
	if err != nil {
		return callsservice.CallTarget{}, err
	}

	target := callsservice.CallTarget{LeadID: lead.ID, Name: lead.Nombre}
	if lead.Telefono != nil {
		target.Phone = *lead.Telefono
	}
	return target, nil
}

// ApplyCallOutcome applies the status rule for an automated call.
func (a *LeadCallDirectory) ApplyCallOutcome(ctx context.Context, leadID int64, outcome string) error {
	return a.leads.ApplyAutomatedOutcome(ctx, leadID, outcome)
}

var _ callsservice.LeadDirectory = (*LeadCallDirectory)(nil)

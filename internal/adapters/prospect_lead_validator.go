package adapters

import (
	"context"

	leadsservice "custodios_crm/internal/leads/service"
	prospectsservice "custodios_crm/internal/prospects/service"
)

// ProspectLeadValidator lets the prospects worklist mark a lead Validado
// through the leads service, so the status change event is published there.
type ProspectLeadValidator struct {
	leads *leadsservice.Service
}

func NewProspectLeadValidator(leads *leadsservice.Service) *ProspectLeadValidator {
	return &ProspectLeadValidator{leads: leads}
}

func (a *ProspectLeadValidator) MarkValidated(ctx context.Context, leadID int64) error {
	_, err := a.leads.MarkValidated(ctx, leadID)
	return err
}

var _ prospectsservice.LeadValidator = (*ProspectLeadValidator)(nil)

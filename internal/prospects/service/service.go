// Package service builds the custodio worklist: cached view rows, collapsed
// to one per person and filtered for the requested view.
package service

import (
	"context"
	"time"

	"custodios_crm/internal/events"
	leadsdomain "custodios_crm/internal/leads/domain"
	"custodios_crm/internal/prospects/domain"
	"custodios_crm/internal/prospects/transport"
	"custodios_crm/platform/cache"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/phone"
)

// CacheKey holds the raw custodio_prospects rows.
const CacheKey = "prospects:all"

// Repository reads the prospect view.
type Repository interface {
	ListAll(ctx context.Context) ([]domain.Prospect, error)
}

// LeadValidator marks a lead as Validado.
type LeadValidator interface {
	MarkValidated(ctx context.Context, leadID int64) error
}

// Service serves the worklist.
type Service struct {
	repo     Repository
	leads    LeadValidator
	store    cache.Store
	ttl      time.Duration
	eventBus events.Bus
	log      *logger.Logger
}

// New creates the worklist service. A nil store or a zero ttl disables caching.
func New(repo Repository, leads LeadValidator, store cache.Store, ttl time.Duration, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		leads:    leads,
		store:    store,
		ttl:      ttl,
		eventBus: eventBus,
		log:      log,
	}
}

// Worklist returns the deduplicated, filtered prospects for config.
func (s *Service) Worklist(ctx context.Context, config domain.FilterConfig) (transport.WorklistResponse, error) {
	rows, err := cache.GetOrLoad(ctx, s.store, CacheKey, s.ttl, s.repo.ListAll)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("list_prospects", err)
		return transport.WorklistResponse{}, err
	}

	unique := domain.Dedupe(rows, domain.FirstWins)
	visible := domain.Filter(unique, config)

	resp := transport.WorklistResponse{
		Filters:   config,
		Total:     len(rows),
		Unique:    len(unique),
		Prospects: make([]transport.ProspectResponse, 0, len(visible)),
	}
	for _, p := range visible {
		resp.Prospects = append(resp.Prospects, toProspectResponse(p))
	}
	return resp, nil
}

// FilterOptions returns the default view and the selectable status filters.
func (s *Service) FilterOptions() transport.FilterOptionsResponse {
	return transport.FilterOptionsResponse{
		Default:       domain.DefaultFilterConfig(),
		StatusOptions: leadsdomain.StatusFilterOptions(),
	}
}

// Validate marks the prospect's lead Validado and drops the cached rows.
func (s *Service) Validate(ctx context.Context, leadID int64) error {
	if err := s.leads.MarkValidated(ctx, leadID); err != nil {
		return err
	}

	if err := cache.Invalidate(ctx, s.store, CacheKey); err != nil {
		s.log.Warn("prospect cache invalidation failed", "error", err)
	}

	s.eventBus.Publish(ctx, events.ProspectValidated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
	})
	return nil
}

func toProspectResponse(p domain.Prospect) transport.ProspectResponse {
	rawPhone := ""
	switch {
	case p.LeadPhone != nil && *p.LeadPhone != "":
		rawPhone = *p.LeadPhone
	case p.PhoneNumberIntl != nil:
		rawPhone = *p.PhoneNumberIntl
	}

	return transport.ProspectResponse{
		Prospect:     p,
		DisplayName:  p.DisplayName(),
		PhoneDisplay: phone.FormatForDisplay(rawPhone),
		StatusLabel:  leadsdomain.ParseLeadStatus(p.LeadStatus).Label(),
	}
}

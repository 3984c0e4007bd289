// Package service implements lead intake, status and board operations.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"custodios_crm/internal/events"
	"custodios_crm/internal/leads/domain"
	"custodios_crm/internal/leads/repository"
	"custodios_crm/internal/leads/transport"
	"custodios_crm/platform/apperr"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/phone"
	"custodios_crm/platform/sanitize"
)

// DuplicateWindow is how far back intake looks for the same contact.
const DuplicateWindow = 60 * time.Second

const (
	SourceManual  = "manual"
	SourceWebhook = "webhook"
)

// Repository is the data access the lead service needs.
type Repository interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	GetByID(ctx context.Context, id int64) (repository.Lead, error)
	FindRecentByContact(ctx context.Context, phoneKey, email string, since time.Time) (repository.Lead, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) (repository.Lead, error)
	UpdateStage(ctx context.Context, id int64, stage string) (repository.Lead, error)
}

// Service handles lead business logic.
type Service struct {
	repo     Repository
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates a new lead service.
func New(repo Repository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log, now: time.Now}
}

// SetClock replaces the clock used for the intake duplicate window.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create registers a new lead in status Nuevo on the Prospecto column. When a
// lead with the same phone or email arrived inside DuplicateWindow, that lead
// is returned with duplicate set and nothing is written.
func (s *Service) Create(ctx context.Context, source string, req transport.CreateLeadRequest) (transport.LeadResponse, bool, error) {
	nombre := sanitize.Text(req.Nombre)
	if nombre == "" {
		return transport.LeadResponse{}, false, apperr.Validation("nombre must contain text")
	}
	email := strings.TrimSpace(req.Email)
	telefono := strings.TrimSpace(req.Telefono)

	existing, err := s.repo.FindRecentByContact(ctx, phone.NormalizeForComparison(telefono), email, s.now().Add(-DuplicateWindow))
	switch {
	case err == nil:
		s.log.Info("duplicate lead intake ignored", "leadId", existing.ID, "source", source)
		return ToLeadResponse(existing), true, nil
	case !errors.Is(err, repository.ErrNotFound):
		return transport.LeadResponse{}, false, err
	}

	fuente := strings.TrimSpace(req.Fuente)
	if fuente == "" {
		fuente = source
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Nombre:   nombre,
		Empresa:  sanitize.Text(req.Empresa),
		Email:    optional(email),
		Telefono: optional(telefono),
		Estado:   string(domain.InitialStatus()),
		Etapa:    string(domain.InitialStage()),
		Valor:    req.Valor,
		Fuente:   fuente,
	})
	if err != nil {
		return transport.LeadResponse{}, false, err
	}

	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Source:    source,
		Nombre:    lead.Nombre,
		Phone:     telefono,
		Email:     email,
	})
	s.log.Info("lead created", "leadId", lead.ID, "source", source)

	return ToLeadResponse(lead), false, nil
}

// Get returns one lead.
func (s *Service) Get(ctx context.Context, id int64) (transport.LeadResponse, error) {
	lead, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(lead), nil
}

// List returns leads filtered by estado, etapa and a free-text search.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) ([]transport.LeadResponse, error) {
	leads, err := s.repo.List(ctx, repository.ListParams{
		Estado: strings.TrimSpace(req.Estado),
		Etapa:  strings.TrimSpace(req.Etapa),
		Search: req.Search,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead))
	}
	return out, nil
}

// UpdateStatus writes any non-blank status text. Known statuses are stored
// with their canonical spelling.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, reason string) (transport.LeadResponse, error) {
	next := domain.ParseLeadStatus(status)
	if next == "" {
		return transport.LeadResponse{}, apperr.Validation("estado must not be blank")
	}

	current, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.setStatus(ctx, current, next, reason)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(updated), nil
}

// UpdateStage moves a lead to another board column.
func (s *Service) UpdateStage(ctx context.Context, id int64, stage string) (transport.LeadResponse, error) {
	next, err := domain.ParseStage(stage)
	if err != nil {
		return transport.LeadResponse{}, apperr.Validation(err.Error())
	}

	current, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.repo.UpdateStage(ctx, id, string(next))
	if err != nil {
		return transport.LeadResponse{}, s.mapNotFound(err)
	}

	if current.Etapa != updated.Etapa {
		s.eventBus.Publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    id,
			OldStage:  current.Etapa,
			NewStage:  updated.Etapa,
		})
	}
	return ToLeadResponse(updated), nil
}

// Board groups leads by column in board order. Rows with an unknown etapa
// land in the Prospecto column.
func (s *Service) Board(ctx context.Context) (transport.BoardResponse, error) {
	leads, err := s.repo.List(ctx, repository.ListParams{Limit: 1000})
	if err != nil {
		return transport.BoardResponse{}, err
	}

	columns := domain.BoardColumns()
	index := make(map[domain.Stage]int, len(columns))
	resp := transport.BoardResponse{Columns: make([]transport.BoardColumn, len(columns))}
	for i, stage := range columns {
		index[stage] = i
		resp.Columns[i] = transport.BoardColumn{Etapa: string(stage), Leads: []transport.LeadResponse{}}
	}

	for _, lead := range leads {
		stage, err := domain.ParseStage(lead.Etapa)
		if err != nil {
			stage = domain.StageProspecto
		}
		i := index[stage]
		resp.Columns[i].Leads = append(resp.Columns[i].Leads, ToLeadResponse(lead))
	}
	return resp, nil
}

// RecordCallOutcome applies the status rule for an agent-recorded call.
func (s *Service) RecordCallOutcome(ctx context.Context, id int64, outcome string) (transport.LeadResponse, error) {
	parsed, ok := domain.ParseCallOutcome(outcome)
	if !ok {
		return transport.LeadResponse{}, apperr.Validation("unknown call outcome")
	}

	lead, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.applyOutcome(ctx, lead, parsed)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(updated), nil
}

// ApplyAutomatedOutcome applies the status rule for a voice-automation call.
// The call itself is counted when its log is stored. Applying the same
// outcome twice leaves the lead unchanged, so redelivered reports are safe.
// Unknown outcomes change nothing.
func (s *Service) ApplyAutomatedOutcome(ctx context.Context, id int64, outcome string) error {
	parsed, ok := domain.ParseCallOutcome(outcome)
	if !ok {
		return nil
	}

	lead, err := s.getLead(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.applyOutcome(ctx, lead, parsed)
	return err
}

// MarkValidated sets Validado. There is no way back from it.
func (s *Service) MarkValidated(ctx context.Context, id int64) (transport.LeadResponse, error) {
	lead, err := s.getLead(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	updated, err := s.setStatus(ctx, lead, domain.ValidateProspect(), "prospect_validated")
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return ToLeadResponse(updated), nil
}

func (s *Service) applyOutcome(ctx context.Context, lead repository.Lead, outcome domain.CallOutcome) (repository.Lead, error) {
	current := domain.ParseLeadStatus(lead.Estado)
	next := domain.StatusAfterCallOutcome(current, outcome)
	if next == current {
		return lead, nil
	}
	return s.setStatus(ctx, lead, next, "call_outcome:"+string(outcome))
}

func (s *Service) setStatus(ctx context.Context, current repository.Lead, next domain.LeadStatus, reason string) (repository.Lead, error) {
	updated, err := s.repo.UpdateStatus(ctx, current.ID, string(next))
	if err != nil {
		return repository.Lead{}, s.mapNotFound(err)
	}

	if current.Estado != updated.Estado {
		s.eventBus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    updated.ID,
			OldStatus: current.Estado,
			NewStatus: updated.Estado,
			Reason:    reason,
		})
		s.log.Info("lead status changed", "leadId", updated.ID, "from", current.Estado, "to", updated.Estado, "reason", reason)
	}
	return updated, nil
}

func (s *Service) getLead(ctx context.Context, id int64) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Lead{}, s.mapNotFound(err)
	}
	return lead, nil
}

func (s *Service) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("lead not found")
	}
	return err
}

// ToLeadResponse maps a stored lead to its API shape.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	telefono := ""
	if lead.Telefono != nil {
		telefono = *lead.Telefono
	}
	return transport.LeadResponse{
		ID:              lead.ID,
		Nombre:          lead.Nombre,
		Empresa:         lead.Empresa,
		Contacto:        Contacto(lead.Email, lead.Telefono),
		Email:           lead.Email,
		Telefono:        lead.Telefono,
		TelefonoDisplay: phone.FormatForDisplay(telefono),
		Estado:          lead.Estado,
		EstadoLabel:     domain.ParseLeadStatus(lead.Estado).Label(),
		Etapa:           lead.Etapa,
		FechaCreacion:   lead.FechaCreacion,
		Valor:           lead.Valor,
		Fuente:          lead.Fuente,
		CallCount:       lead.CallCount,
	}
}

// Contacto joins the present contact channels with " | ".
func Contacto(email, telefono *string) string {
	parts := make([]string, 0, 2)
	for _, part := range []*string{email, telefono} {
		if part != nil && strings.TrimSpace(*part) != "" {
			parts = append(parts, strings.TrimSpace(*part))
		}
	}
	return strings.Join(parts, " | ")
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

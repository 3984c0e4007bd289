package service

import (
	"context"
	"errors"
	"strings"

	"custodios_crm/internal/calls/repository"
	"custodios_crm/internal/calls/transport"
	"custodios_crm/internal/calls/webhook"
	"custodios_crm/internal/events"
	"custodios_crm/internal/scheduler"
	"custodios_crm/platform/apperr"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/phone"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

// Repository is the call log store.
type Repository interface {
	Insert(ctx context.Context, params repository.CreateCallLogParams) (repository.CallLog, bool, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.CallLog, error)
}

// CallTarget is the subset of a lead needed to place a call.
type CallTarget struct {
	LeadID int64
	Name   string
	Phone  string
}

// LeadDirectory reads and updates leads on behalf of the calls module.
type LeadDirectory interface {
	GetCallTarget(ctx context.Context, leadID int64) (CallTarget, error)
	ApplyCallOutcome(ctx context.Context, leadID int64, outcome string) error
}

// Dialer places an outbound call through the automation webhook.
type Dialer interface {
	StartCall(ctx context.Context, leadID int64, leadName, phoneNumber string) error
}

type Service struct {
	repo   Repository
	leads  LeadDirectory
	dialer Dialer
	region string
	bus    events.Bus
	log    *logger.Logger
}

func New(repo Repository, leads LeadDirectory, dialer Dialer, region string, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, dialer: dialer, region: region, bus: eventBus, log: log}
}

// InitiateCall asks the automation to call the lead. A failed request is not
// retried.
func (s *Service) InitiateCall(ctx context.Context, leadID int64) (transport.InitiateCallResponse, error) {
	target, err := s.leads.GetCallTarget(ctx, leadID)
	if err != nil {
		return transport.InitiateCallResponse{}, err
	}
	if strings.TrimSpace(target.Phone) == "" {
		return transport.InitiateCallResponse{}, apperr.Validation("lead has no phone number")
	}

	if err := s.dialer.StartCall(ctx, target.LeadID, target.Name, target.Phone); err != nil {
		s.log.WithContext(ctx).WebhookFailure("call_automation", webhook.ActionStartCall, leadID, err)
		if errors.Is(err, webhook.ErrNotConfigured) {
			return transport.InitiateCallResponse{}, apperr.Unavailable("call automation is not configured", err)
		}
		return transport.InitiateCallResponse{}, apperr.Unavailable("call could not be started", err)
	}

	number := phone.NormalizeE164(target.Phone, s.region)
	s.bus.Publish(ctx, events.CallInitiated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Phone:     number,
	})

	return transport.InitiateCallResponse{LeadID: leadID, PhoneNumber: number, Status: "requested"}, nil
}

// RecordOutcome stores a call report and applies its outcome to the lead.
// The repository counts the call only when the call id is new, so provider
// redeliveries do not inflate call_count. Reports that can never be stored
// carry scheduler.ErrInvalidPayload so the worker does not retry them.
func (s *Service) RecordOutcome(ctx context.Context, payload scheduler.CallOutcomePayload) error {
	if strings.TrimSpace(payload.CallID) == "" && payload.LeadID == nil {
		return apperr.Wrap(apperr.KindValidation, "call_id or lead_id is required", scheduler.ErrInvalidPayload)
	}

	direction := payload.Direction
	if direction == "" {
		direction = phone.DirectionOutbound
	}

	log, inserted, err := s.repo.Insert(ctx, repository.CreateCallLogParams{
		LeadID:               payload.LeadID,
		VAPICallID:           optional(payload.CallID),
		Direction:            direction,
		CustomerName:         optional(payload.CustomerName),
		CustomerNumber:       optional(payload.CustomerNumber),
		CallerPhoneNumber:    optional(payload.CallerPhoneNumber),
		PhoneNumber:          optional(payload.PhoneNumber),
		AssistantPhoneNumber: optional(payload.AssistantPhoneNumber),
		Metadata:             payload.Metadata,
		Outcome:              optional(payload.Outcome),
		DurationSeconds:      payload.DurationSeconds,
		Transcript:           optional(payload.Transcript),
		RecordingURL:         optional(payload.RecordingURL),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperr.Wrap(apperr.KindNotFound, "lead not found", errors.Join(scheduler.ErrInvalidPayload, err))
		}
		return err
	}

	if payload.LeadID != nil {
		if err := s.leads.ApplyCallOutcome(ctx, *payload.LeadID, payload.Outcome); err != nil {
			return err
		}
	}

	s.log.Info("call outcome recorded", "callLogId", log.ID, "callId", payload.CallID, "outcome", payload.Outcome, "new", inserted)
	s.bus.Publish(ctx, events.CallOutcomeRecorded{
		BaseEvent: events.NewBaseEvent(),
		CallLogID: log.ID,
		LeadID:    payload.LeadID,
		Outcome:   payload.Outcome,
	})
	return nil
}

func (s *Service) List(ctx context.Context, req transport.ListCallLogsRequest) ([]transport.CallLogResponse, error) {
	logs, err := s.repo.List(ctx, repository.ListParams{LeadID: req.LeadID, Limit: req.Limit})
	if err != nil {
		return nil, err
	}

	resp := make([]transport.CallLogResponse, 0, len(logs))
	for _, log := range logs {
		resp = append(resp, ToCallLogResponse(log))
	}
	return resp, nil
}

// PayloadFromRequest converts the webhook body into the queued task payload.
func PayloadFromRequest(req transport.CallOutcomeRequest) scheduler.CallOutcomePayload {
	return scheduler.CallOutcomePayload{
		CallID:               strings.TrimSpace(req.CallID),
		LeadID:               req.LeadID,
		Direction:            req.Direction,
		CustomerName:         req.CustomerName,
		CustomerNumber:       req.CustomerNumber,
		CallerPhoneNumber:    req.CallerPhoneNumber,
		PhoneNumber:          req.PhoneNumber,
		AssistantPhoneNumber: req.AssistantPhoneNumber,
		Metadata:             req.Metadata,
		Outcome:              strings.TrimSpace(req.Outcome),
		DurationSeconds:      req.DurationSeconds,
		Transcript:           req.Transcript,
		RecordingURL:         req.RecordingURL,
	}
}

func ToCallLogResponse(log repository.CallLog) transport.CallLogResponse {
	phones := phone.CallLogPhones{
		CustomerNumber:       deref(log.CustomerNumber),
		Metadata:             log.Metadata,
		Direction:            log.Direction,
		CallerPhoneNumber:    deref(log.CallerPhoneNumber),
		PhoneNumber:          deref(log.PhoneNumber),
		AssistantPhoneNumber: deref(log.AssistantPhoneNumber),
	}

	return transport.CallLogResponse{
		ID:              log.ID,
		LeadID:          log.LeadID,
		CallID:          log.VAPICallID,
		Direction:       log.Direction,
		CustomerName:    log.CustomerName,
		Number:          phone.ResolveCallLogNumber(phones),
		NumberDisplay:   phone.DisplayCallLogNumber(phones),
		Outcome:         log.Outcome,
		DurationSeconds: log.DurationSeconds,
		Transcript:      log.Transcript,
		RecordingURL:    log.RecordingURL,
		CreatedAt:       log.CreatedAt,
	}
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

var _ scheduler.CallOutcomeProcessor = (*Service)(nil)

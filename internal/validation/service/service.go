// Package service persists validation passes and derives their outcome.
package service

import (
	"context"
	"errors"
	"time"

	"custodios_crm/internal/events"
	"custodios_crm/internal/validation/domain"
	"custodios_crm/internal/validation/repository"
	"custodios_crm/internal/validation/transport"
	"custodios_crm/platform/apperr"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/sanitize"

	"github.com/google/uuid"
)

// Repository is the persistence the validation service needs.
type Repository interface {
	GetByLeadID(ctx context.Context, leadID int64) (repository.Record, error)
	Upsert(ctx context.Context, params repository.UpsertParams) (repository.Record, error)
}

// Service handles validation submissions.
type Service struct {
	repo     Repository
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates a validation service.
func New(repo Repository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log, now: time.Now}
}

// SetClock replaces the clock used to measure validation duration.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Get returns the validation record of a lead.
func (s *Service) Get(ctx context.Context, leadID int64) (transport.ValidationRecordResponse, error) {
	rec, err := s.repo.GetByLeadID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ValidationRecordResponse{}, apperr.NotFound("validation record not found")
		}
		return transport.ValidationRecordResponse{}, err
	}
	return toResponse(rec), nil
}

// Submit stores the criteria of a validation pass. The status is always
// recomputed from the submitted criteria; any stored status is ignored and
// the lead's own status is not touched.
func (s *Service) Submit(ctx context.Context, leadID int64, reviewer uuid.UUID, req transport.SubmitValidationRequest) (transport.ValidationRecordResponse, error) {
	criteria := domain.Criteria{
		InterviewPassed:       req.InterviewPassed,
		BackgroundCheckPassed: req.BackgroundCheckPassed,
		AgeRequirementMet:     req.AgeRequirementMet,
	}
	status := domain.Decide(criteria)

	var reviewerID *uuid.UUID
	if reviewer != uuid.Nil {
		reviewerID = &reviewer
	}

	var notes *string
	if trimmed := sanitize.Multiline(req.Notes); trimmed != "" {
		notes = &trimmed
	}

	rec, err := s.repo.Upsert(ctx, repository.UpsertParams{
		LeadID:                leadID,
		InterviewPassed:       criteria.InterviewPassed,
		BackgroundCheckPassed: criteria.BackgroundCheckPassed,
		AgeRequirementMet:     criteria.AgeRequirementMet,
		AdditionalCriteria:    req.AdditionalCriteria,
		Status:                string(status),
		DurationSeconds:       s.durationSince(req.OpenedAt),
		ValidatedBy:           reviewerID,
		Notes:                 notes,
	})
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return transport.ValidationRecordResponse{}, apperr.NotFound("lead not found")
		}
		return transport.ValidationRecordResponse{}, err
	}

	s.eventBus.Publish(ctx, events.ValidationSubmitted{
		BaseEvent:       events.NewBaseEvent(),
		RecordID:        rec.ID,
		LeadID:          rec.LeadID,
		Status:          rec.Status,
		DurationSeconds: rec.DurationSeconds,
	})
	s.log.Info("validation submitted", "leadId", leadID, "status", rec.Status, "complete", criteria.Complete())

	return toResponse(rec), nil
}

// durationSince returns whole seconds from openedAt to now. A missing or
// future openedAt yields 0.
func (s *Service) durationSince(openedAt *time.Time) int64 {
	if openedAt == nil || openedAt.IsZero() {
		return 0
	}
	elapsed := s.now().Sub(*openedAt)
	if elapsed < 0 {
		return 0
	}
	return int64(elapsed / time.Second)
}

func toResponse(rec repository.Record) transport.ValidationRecordResponse {
	var validatedBy *string
	if rec.ValidatedBy != nil {
		id := rec.ValidatedBy.String()
		validatedBy = &id
	}
	additional := rec.AdditionalCriteria
	if additional == nil {
		additional = map[string]any{}
	}
	return transport.ValidationRecordResponse{
		ID:                        rec.ID,
		LeadID:                    rec.LeadID,
		InterviewPassed:           rec.InterviewPassed,
		BackgroundCheckPassed:     rec.BackgroundCheckPassed,
		AgeRequirementMet:         rec.AgeRequirementMet,
		AdditionalCriteria:        additional,
		Status:                    rec.Status,
		ValidationDurationSeconds: rec.DurationSeconds,
		ValidatedBy:               validatedBy,
		Notes:                     rec.Notes,
		CreatedAt:                 rec.CreatedAt,
		UpdatedAt:                 rec.UpdatedAt,
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("validation record not found")
	ErrLeadNotFound = errors.New("lead not found")
)

const foreignKeyViolation = "23503"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Record struct {
	ID                    int64
	LeadID                int64
	InterviewPassed       *bool
	BackgroundCheckPassed *bool
	AgeRequirementMet     *bool
	AdditionalCriteria    map[string]any
	Status                string
	DurationSeconds       int64
	ValidatedBy           *uuid.UUID
	Notes                 *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type UpsertParams struct {
	LeadID                int64
	InterviewPassed       *bool
	BackgroundCheckPassed *bool
	AgeRequirementMet     *bool
	AdditionalCriteria    map[string]any
	Status                string
	DurationSeconds       int64
	ValidatedBy           *uuid.UUID
	Notes                 *string
}

const recordColumns = `id, lead_id, interview_passed, background_check_passed, age_requirement_met,
	additional_criteria, status, validation_duration_seconds, validated_by, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID,
		&rec.LeadID,
		&rec.InterviewPassed,
		&rec.BackgroundCheckPassed,
		&rec.AgeRequirementMet,
		&rec.AdditionalCriteria,
		&rec.Status,
		&rec.DurationSeconds,
		&rec.ValidatedBy,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (r *Repository) GetByLeadID(ctx context.Context, leadID int64) (Record, error) {
	return scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM validation_records WHERE lead_id = $1`, leadID))
}

// Upsert creates the lead's record or overwrites every field of the existing
// one. Concurrent submits are last-write-wins.
func (r *Repository) Upsert(ctx context.Context, params UpsertParams) (Record, error) {
	additional := params.AdditionalCriteria
	if additional == nil {
		additional = map[string]any{}
	}

	rec, err := scanRecord(r.pool.QueryRow(ctx, `
		INSERT INTO validation_records (
			lead_id, interview_passed, background_check_passed, age_requirement_met,
			additional_criteria, status, validation_duration_seconds, validated_by, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (lead_id) DO UPDATE SET
			interview_passed = EXCLUDED.interview_passed,
			background_check_passed = EXCLUDED.background_check_passed,
			age_requirement_met = EXCLUDED.age_requirement_met,
			additional_criteria = EXCLUDED.additional_criteria,
			status = EXCLUDED.status,
			validation_duration_seconds = EXCLUDED.validation_duration_seconds,
			validated_by = EXCLUDED.validated_by,
			notes = EXCLUDED.notes,
			updated_at = now()
		RETURNING `+recordColumns,
		params.LeadID,
		params.InterviewPassed,
		params.BackgroundCheckPassed,
		params.AgeRequirementMet,
		additional,
		params.Status,
		params.DurationSeconds,
		params.ValidatedBy,
		params.Notes,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return Record{}, ErrLeadNotFound
		}
		return Record{}, fmt.Errorf("upsert validation record: %w", err)
	}
	return rec, nil
}

// Summary aggregates validation outcomes for the dashboard.
type Summary struct {
	Approved               int
	Rejected               int
	AverageDurationSeconds float64
}

func (r *Repository) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE status = 'approved'),
			count(*) FILTER (WHERE status = 'rejected'),
			coalesce(avg(validation_duration_seconds), 0)::float8
		FROM validation_records
	`).Scan(&s.Approved, &s.Rejected, &s.AverageDurationSeconds)
	if err != nil {
		return Summary{}, fmt.Errorf("validation summary: %w", err)
	}
	return s, nil
}

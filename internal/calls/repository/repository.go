package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type CallLog struct {
	ID                   int64
	LeadID               *int64
	VAPICallID           *string
	Direction            string
	CustomerName         *string
	CustomerNumber       *string
	CallerPhoneNumber    *string
	PhoneNumber          *string
	AssistantPhoneNumber *string
	Metadata             map[string]any
	Outcome              *string
	DurationSeconds      *int
	Transcript           *string
	RecordingURL         *string
	CreatedAt            time.Time
}

type CreateCallLogParams struct {
	LeadID               *int64
	VAPICallID           *string
	Direction            string
	CustomerName         *string
	CustomerNumber       *string
	CallerPhoneNumber    *string
	PhoneNumber          *string
	AssistantPhoneNumber *string
	Metadata             map[string]any
	Outcome              *string
	DurationSeconds      *int
	Transcript           *string
	RecordingURL         *string
}

type ListParams struct {
	LeadID *int64
	Limit  int
}

// Insert stores a call log. A repeated vapi_call_id updates the stored row
// instead, and inserted reports which of the two happened. A new log for a
// lead increments leads.call_count in the same transaction, so a call is
// counted exactly when its log row is created.
func (r *Repository) Insert(ctx context.Context, params CreateCallLogParams) (CallLog, bool, error) {
	metadata := params.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CallLog{}, false, fmt.Errorf("begin call log transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var log CallLog
	var inserted bool
	err = tx.QueryRow(ctx, `
		INSERT INTO call_logs (
			lead_id, vapi_call_id, direction, customer_name, customer_number, caller_phone_number,
			phone_number, assistant_phone_number, metadata, outcome, duration_seconds, transcript, recording_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (vapi_call_id) DO UPDATE SET
			outcome = EXCLUDED.outcome,
			duration_seconds = EXCLUDED.duration_seconds,
			transcript = coalesce(EXCLUDED.transcript, call_logs.transcript),
			recording_url = coalesce(EXCLUDED.recording_url, call_logs.recording_url)
		RETURNING id, lead_id, vapi_call_id, direction, customer_name, customer_number, caller_phone_number,
			phone_number, assistant_phone_number, metadata, outcome, duration_seconds, transcript, recording_url,
			created_at, (xmax = 0)
	`,
		params.LeadID,
		params.VAPICallID,
		params.Direction,
		params.CustomerName,
		params.CustomerNumber,
		params.CallerPhoneNumber,
		params.PhoneNumber,
		params.AssistantPhoneNumber,
		metadata,
		params.Outcome,
		params.DurationSeconds,
		params.Transcript,
		params.RecordingURL,
	).Scan(
		&log.ID,
		&log.LeadID,
		&log.VAPICallID,
		&log.Direction,
		&log.CustomerName,
		&log.CustomerNumber,
		&log.CallerPhoneNumber,
		&log.PhoneNumber,
		&log.AssistantPhoneNumber,
		&log.Metadata,
		&log.Outcome,
		&log.DurationSeconds,
		&log.Transcript,
		&log.RecordingURL,
		&log.CreatedAt,
		&inserted,
	)
	if err != nil {
		return CallLog{}, false, fmt.Errorf("insert call log: %w", err)
	}

	if inserted && params.LeadID != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE leads SET call_count = call_count + 1, updated_at = now()
			WHERE id = $1
		`, *params.LeadID); err != nil {
			return CallLog{}, false, fmt.Errorf("count call for lead: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return CallLog{}, false, fmt.Errorf("commit call log: %w", err)
	}
	return log, inserted, nil
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]CallLog, error) {
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, vapi_call_id, direction, customer_name, customer_number, caller_phone_number,
			phone_number, assistant_phone_number, metadata, outcome, duration_seconds, transcript, recording_url, created_at
		FROM call_logs
		WHERE ($1::bigint IS NULL OR lead_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, params.LeadID, limit)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer rows.Close()

	logs := make([]CallLog, 0)
	for rows.Next() {
		var log CallLog
		if err := rows.Scan(
			&log.ID,
			&log.LeadID,
			&log.VAPICallID,
			&log.Direction,
			&log.CustomerName,
			&log.CustomerNumber,
			&log.CallerPhoneNumber,
			&log.PhoneNumber,
			&log.AssistantPhoneNumber,
			&log.Metadata,
			&log.Outcome,
			&log.DurationSeconds,
			&log.Transcript,
			&log.RecordingURL,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		logs = append(logs, log)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return logs, nil
}

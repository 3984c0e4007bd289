package repository

import (
	"context"
	"fmt"

	"custodios_crm/internal/prospects/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAll returns every row of the custodio_prospects view, newest first.
// Duplicates are expected; the worklist collapses them.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Prospect, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lead_id, validated_lead_id, lead_name, custodio_name, lead_phone,
		       phone_number_intl, lead_email, coalesce(lead_status, ''), call_count, transcript
		FROM custodio_prospects
		ORDER BY created_at DESC, lead_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	defer rows.Close()

	prospects := make([]domain.Prospect, 0)
	for rows.Next() {
		var p domain.Prospect
		if err := rows.Scan(
			&p.LeadID,
			&p.ValidatedLeadID,
			&p.LeadName,
			&p.CustodioName,
			&p.LeadPhone,
			&p.PhoneNumberIntl,
			&p.LeadEmail,
			&p.LeadStatus,
			&p.CallCount,
			&p.Transcript,
		); err != nil {
			return nil, fmt.Errorf("scan prospect: %w", err)
		}
		prospects = append(prospects, p)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return prospects, nil
}

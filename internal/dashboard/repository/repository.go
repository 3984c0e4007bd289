package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Count is one bucket of a grouped count.
type Count struct {
	Key   string
	Total int
}

// ProspectInteraction splits prospects by whether they have a VAPI call.
type ProspectInteraction struct {
	WithVAPI    int
	WithoutVAPI int
}

func (r *Repository) LeadsByStatus(ctx context.Context) ([]Count, error) {
	return r.groupedCount(ctx, "estado")
}

func (r *Repository) LeadsByStage(ctx context.Context) ([]Count, error) {
	return r.groupedCount(ctx, "etapa")
}

// column is one of the two fixed names above, never user input.
func (r *Repository) groupedCount(ctx context.Context, column string) ([]Count, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM leads
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC, %[1]s
	`, column))
	if err != nil {
		return nil, fmt.Errorf("count leads by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make([]Count, 0)
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Key, &c.Total); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return counts, nil
}

// ProspectInteraction counts prospects the voice automation has or has not
// called yet.
func (r *Repository) ProspectInteraction(ctx context.Context) (ProspectInteraction, error) {
	var out ProspectInteraction
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE coalesce(call_count, 0) > 0) AS with_vapi,
			COUNT(*) FILTER (WHERE coalesce(call_count, 0) = 0) AS without_vapi
		FROM custodio_prospects
	`).Scan(&out.WithVAPI, &out.WithoutVAPI)
	if err != nil {
		return ProspectInteraction{}, fmt.Errorf("count prospect interaction: %w", err)
	}
	return out, nil
}

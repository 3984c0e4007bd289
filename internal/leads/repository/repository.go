package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID            int64
	Nombre        string
	Empresa       string
	Email         *string
	Telefono      *string
	Estado        string
	Etapa         string
	Valor         float64
	Fuente        string
	CallCount     int
	FechaCreacion time.Time
	UpdatedAt     time.Time
}

type CreateLeadParams struct {
	Nombre   string
	Empresa  string
	Email    *string
	Telefono *string
	Estado   string
	Etapa    string
	Valor    float64
	Fuente   string
}

type ListParams struct {
	Estado string
	Etapa  string
	Search string
	Limit  int
}

const leadColumns = `id, nombre, empresa, email, telefono, estado, etapa, valor::float8, fuente, call_count, fecha_creacion, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID,
		&lead.Nombre,
		&lead.Empresa,
		&lead.Email,
		&lead.Telefono,
		&lead.Estado,
		&lead.Etapa,
		&lead.Valor,
		&lead.Fuente,
		&lead.CallCount,
		&lead.FechaCreacion,
		&lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (nombre, empresa, email, telefono, estado, etapa, valor, fuente)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+leadColumns,
		params.Nombre, params.Empresa, params.Email, params.Telefono, params.Estado, params.Etapa, params.Valor, params.Fuente,
	)
	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
}

// FindRecentByContact returns the newest lead created at or after since whose
// telefono shares phoneKey (last 10 digits) or whose email equals email.
// Empty arguments never match.
func (r *Repository) FindRecentByContact(ctx context.Context, phoneKey, email string, since time.Time) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE fecha_creacion >= $3
		  AND (
		    ($1 <> '' AND right(regexp_replace(coalesce(telefono, ''), '\D', '', 'g'), 10) = $1)
		    OR ($2 <> '' AND lower(coalesce(email, '')) = lower($2))
		  )
		ORDER BY fecha_creacion DESC
		LIMIT 1
	`, phoneKey, email, since))
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, error) {
	limit := params.Limit
	if limit <= 0 || limit > 1000 {
		limit = 500
	}

	search := strings.TrimSpace(params.Search)
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE ($1 = '' OR estado = $1)
		  AND ($2 = '' OR etapa = $2)
		  AND ($3 = '' OR nombre ILIKE '%' || $3 || '%' OR empresa ILIKE '%' || $3 || '%'
		       OR coalesce(email, '') ILIKE '%' || $3 || '%' OR coalesce(telefono, '') ILIKE '%' || $3 || '%')
		ORDER BY fecha_creacion DESC
		LIMIT $4
	`, params.Estado, params.Etapa, search, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET estado = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, status,
	))
}

func (r *Repository) UpdateStage(ctx context.Context, id int64, stage string) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET etapa = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+leadColumns,
		id, stage,
	))
}

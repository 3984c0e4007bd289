// Package validation provides the custodio validation bounded context module.
package validation

import (
	"custodios_crm/internal/events"
	apphttp "custodios_crm/internal/http"
	"custodios_crm/internal/validation/handler"
	"custodios_crm/internal/validation/repository"
	"custodios_crm/internal/validation/service"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the validation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
}

// NewModule creates and initializes the validation module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "validation"
}

// Repository exposes the record store for the dashboard.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts validation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/validations"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package dashboard provides the read-only KPI summary.
package dashboard

import (
	"custodios_crm/internal/dashboard/handler"
	"custodios_crm/internal/dashboard/repository"
	"custodios_crm/internal/dashboard/service"
	apphttp "custodios_crm/internal/http"
	"custodios_crm/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the dashboard module. validation supplies the
// approved/rejected aggregates.
func NewModule(pool *pgxpool.Pool, validation service.ValidationStats, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), validation, log)
	return &Module{handler: handler.New(svc)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts dashboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

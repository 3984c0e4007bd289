// Package prospects provides the custodio worklist bounded context module.
package prospects

import (
	"time"

	"custodios_crm/internal/events"
	apphttp "custodios_crm/internal/http"
	"custodios_crm/internal/prospects/handler"
	"custodios_crm/internal/prospects/repository"
	"custodios_crm/internal/prospects/service"
	"custodios_crm/platform/cache"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the prospects bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the worklist. It subscribes the cache invalidator to eventBus.
func NewModule(pool *pgxpool.Pool, leads service.LeadValidator, store cache.Store, ttl time.Duration, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), leads, store, ttl, eventBus, log)
	service.NewCacheInvalidator(store, log).RegisterHandlers(eventBus)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "prospects"
}

// Service returns the worklist service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts prospects routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/prospects"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

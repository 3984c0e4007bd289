// Package calls provides outbound call requests and the call log.
package calls

import (
	"custodios_crm/internal/calls/handler"
	"custodios_crm/internal/calls/repository"
	"custodios_crm/internal/calls/service"
	"custodios_crm/internal/calls/webhook"
	"custodios_crm/internal/events"
	apphttp "custodios_crm/internal/http"
	"custodios_crm/internal/scheduler"
	"custodios_crm/platform/config"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the calls module reads from the environment.
type Config interface {
	config.CallWebhookConfig
	config.PhoneConfig
}

// Module is the calls bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the call log store, the automation webhook client and the
// outcome queue. queue may be nil when no redis is configured.
func NewModule(
	pool *pgxpool.Pool,
	leads service.LeadDirectory,
	queue scheduler.CallOutcomeEnqueuer,
	cfg Config,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := NewService(pool, leads, cfg, eventBus, log)
	return &Module{
		handler: handler.New(svc, queue, val, log),
		service: svc,
	}
}

// NewService builds the calls service without HTTP wiring, for the worker.
func NewService(pool *pgxpool.Pool, leads service.LeadDirectory, cfg Config, eventBus events.Bus, log *logger.Logger) *service.Service {
	return service.New(
		repository.New(pool),
		leads,
		webhook.NewClient(cfg, log),
		cfg.GetPhoneDefaultRegion(),
		eventBus,
		log,
	)
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "calls"
}

// Service exposes the call outcome processor.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts call routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
	m.handler.RegisterWebhookRoutes(ctx.Webhook)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

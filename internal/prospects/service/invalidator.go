package service

import (
	"context"

	"custodios_crm/internal/events"
	"custodios_crm/platform/cache"
	"custodios_crm/platform/logger"
)

// CacheInvalidator drops the cached worklist rows whenever an event changes
// what the custodio_prospects view would return.
type CacheInvalidator struct {
	store cache.Store
	log   *logger.Logger
}

// NewCacheInvalidator creates an invalidator for store.
func NewCacheInvalidator(store cache.Store, log *logger.Logger) *CacheInvalidator {
	return &CacheInvalidator{store: store, log: log}
}

// RegisterHandlers subscribes the invalidator to the relevant events.
func (i *CacheInvalidator) RegisterHandlers(bus events.Bus) {
	handler := events.HandlerFunc(i.handle)
	bus.Subscribe(events.LeadCreated{}.EventName(), handler)
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), handler)
	bus.Subscribe(events.ProspectValidated{}.EventName(), handler)
	bus.Subscribe(events.CallOutcomeRecorded{}.EventName(), handler)
	bus.Subscribe(events.ValidationSubmitted{}.EventName(), handler)
}

func (i *CacheInvalidator) handle(ctx context.Context, event events.Event) error {
	if err := cache.Invalidate(ctx, i.store, CacheKey); err != nil {
		i.log.Warn("prospect cache invalidation failed", "event", event.EventName(), "error", err)
		return err
	}
	i.log.Debug("prospect cache invalidated", "event", event.EventName())
	return nil
}

package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"custodios_crm/platform/logger"
)

type pingEvent struct {
	BaseEvent
}

func (pingEvent) EventName() string { return "test.ping" }

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	first := errors.New("first")

	var calls int32
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return first
	}))
	bus.Subscribe("test.ping", HandlerFunc(func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	err := bus.PublishSync(context.Background(), pingEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, first) {
		t.Fatalf("expected joined error to contain handler error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
}

func TestPublishRunsHandlersAfterCallerCancels(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	done := make(chan error, 1)
	bus.Subscribe("test.ping", HandlerFunc(func(ctx context.Context, _ Event) error {
		done <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, pingEvent{BaseEvent: NewBaseEvent()})
	cancel()
	bus.Wait()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("handler context should not be cancelled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

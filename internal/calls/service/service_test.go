package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"custodios_crm/internal/calls/repository"
	"custodios_crm/internal/calls/webhook"
	"custodios_crm/internal/events"
	"custodios_crm/internal/scheduler"
	"custodios_crm/platform/apperr"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/phone"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	byCall  map[string]repository.CallLog
	logs    []repository.CallLog
	counted map[int64]int
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byCall: map[string]repository.CallLog{}, counted: map[int64]int{}}
}

func (f *fakeRepo) Insert(_ context.Context, p repository.CreateCallLogParams) (repository.CallLog, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.CallLog{}, false, f.err
	}
	if p.VAPICallID != nil {
		if existing, ok := f.byCall[*p.VAPICallID]; ok {
			existing.Outcome = p.Outcome
			f.byCall[*p.VAPICallID] = existing
			return existing, false, nil
		}
	}
	log := repository.CallLog{
		ID: f.nextID, LeadID: p.LeadID, VAPICallID: p.VAPICallID, Direction: p.Direction,
		CustomerNumber: p.CustomerNumber, Outcome: p.Outcome, CreatedAt: time.Now(),
	}
	f.nextID++
	if p.VAPICallID != nil {
		f.byCall[*p.VAPICallID] = log
	}
	if p.LeadID != nil {
		f.counted[*p.LeadID]++
	}
	f.logs = append(f.logs, log)
	return log, true, nil
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.CallLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]repository.CallLog(nil), f.logs...), nil
}

type fakeLeads struct {
	targets  map[int64]CallTarget
	applied  map[int64]int
	outcomes []string
}

func newFakeLeads() *fakeLeads {
	return &fakeLeads{targets: map[int64]CallTarget{}, applied: map[int64]int{}}
}

func (f *fakeLeads) GetCallTarget(_ context.Context, id int64) (CallTarget, error) {
	target, ok := f.targets[id]
	if !ok {
		return CallTarget{}, apperr.NotFound("lead not found")
	}
	return target, nil
}

func (f *fakeLeads) ApplyCallOutcome(_ context.Context, id int64, outcome string) error {
	f.applied[id]++
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

type fakeDialer struct {
	err   error
	calls []CallTarget
}

func (f *fakeDialer) StartCall(_ context.Context, leadID int64, name, number string) error {
	f.calls = append(f.calls, CallTarget{LeadID: leadID, Name: name, Phone: number})
	return f.err
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func int64Ptr(v int64) *int64 { return &v }

func TestInitiateCallPublishesNormalizedNumber(t *testing.T) {
	leads := newFakeLeads()
	leads.targets[7] = CallTarget{LeadID: 7, Name: "Ana", Phone: "55 1234 5678"}
	dialer := &fakeDialer{}
	bus := &recordingBus{}
	svc := New(newFakeRepo(), leads, dialer, "MX", bus, logger.Discard())

	resp, err := svc.InitiateCall(context.Background(), 7)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if resp.PhoneNumber != "+525512345678" {
		t.Fatalf("phone = %q", resp.PhoneNumber)
	}
	if len(dialer.calls) != 1 || dialer.calls[0].Name != "Ana" {
		t.Fatalf("unexpected dialer calls %+v", dialer.calls)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.events))
	}
	if _, ok := bus.events[0].(events.CallInitiated); !ok {
		t.Fatalf("expected CallInitiated, got %T", bus.events[0])
	}
}

func TestInitiateCallFailures(t *testing.T) {
	leads := newFakeLeads()
	leads.targets[1] = CallTarget{LeadID: 1, Name: "Sin tel"}
	leads.targets[2] = CallTarget{LeadID: 2, Name: "Con tel", Phone: "5512345678"}

	tests := []struct {
		name   string
		leadID int64
		dialer *fakeDialer
		kind   apperr.Kind
	}{
		{"missing lead", 99, &fakeDialer{}, apperr.KindNotFound},
		{"no phone", 1, &fakeDialer{}, apperr.KindValidation},
		{"webhook error", 2, &fakeDialer{err: errors.New("boom")}, apperr.KindUnavailable},
		{"webhook disabled", 2, &fakeDialer{err: webhook.ErrNotConfigured}, apperr.KindUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bus := &recordingBus{}
			svc := New(newFakeRepo(), leads, tc.dialer, "MX", bus, logger.Discard())
			_, err := svc.InitiateCall(context.Background(), tc.leadID)
			if !apperr.Is(err, tc.kind) {
				t.Fatalf("expected kind %v, got %v", tc.kind, err)
			}
			if len(bus.events) != 0 {
				t.Fatalf("no event expected on failure")
			}
		})
	}
}

func TestRecordOutcomeCountsEachCallOnce(t *testing.T) {
	repo := newFakeRepo()
	leads := newFakeLeads()
	bus := &recordingBus{}
	svc := New(repo, leads, &fakeDialer{}, "MX", bus, logger.Discard())

	payload := scheduler.CallOutcomePayload{CallID: "call-1", LeadID: int64Ptr(3), Outcome: "contactado"}
	for i := 0; i < 2; i++ {
		if err := svc.RecordOutcome(context.Background(), payload); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	if repo.counted[3] != 1 {
		t.Fatalf("expected lead counted once, got %d", repo.counted[3])
	}
	if leads.applied[3] != 2 {
		t.Fatalf("expected the outcome applied on every delivery, got %d", leads.applied[3])
	}
	if len(bus.events) != 2 {
		t.Fatalf("expected an event per delivery, got %d", len(bus.events))
	}
}

func TestRecordOutcomeRejectsEmptyPayload(t *testing.T) {
	svc := New(newFakeRepo(), newFakeLeads(), &fakeDialer{}, "MX", &recordingBus{}, logger.Discard())
	err := svc.RecordOutcome(context.Background(), scheduler.CallOutcomePayload{Outcome: "buzon"})
	if !errors.Is(err, scheduler.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
}

func TestRecordOutcomeUnknownLead(t *testing.T) {
	repo := newFakeRepo()
	repo.err = &pgconn.PgError{Code: "23503"}
	leads := newFakeLeads()
	svc := New(repo, leads, &fakeDialer{}, "MX", &recordingBus{}, logger.Discard())

	err := svc.RecordOutcome(context.Background(), scheduler.CallOutcomePayload{CallID: "abc", LeadID: int64Ptr(999)})
	if !errors.Is(err, scheduler.ErrInvalidPayload) {
		t.Fatalf("worker must not retry a missing lead, got %v", err)
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found kind, got %v", err)
	}
	if leads.applied[999] != 0 {
		t.Fatal("no outcome should be applied")
	}
}

func TestRecordOutcomeWithoutLeadOnlyStoresLog(t *testing.T) {
	repo := newFakeRepo()
	leads := newFakeLeads()
	svc := New(repo, leads, &fakeDialer{}, "MX", &recordingBus{}, logger.Discard())

	err := svc.RecordOutcome(context.Background(), scheduler.CallOutcomePayload{CallID: "inbound-1", Direction: phone.DirectionInbound})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.logs) != 1 || repo.logs[0].Direction != phone.DirectionInbound {
		t.Fatalf("unexpected logs %+v", repo.logs)
	}
	if len(leads.outcomes) != 0 {
		t.Fatalf("no lead should be touched")
	}
}

func TestToCallLogResponseResolvesNumber(t *testing.T) {
	number := "+525512345678"
	resp := ToCallLogResponse(repository.CallLog{ID: 1, Direction: phone.DirectionOutbound, CustomerNumber: &number})
	if resp.Number != number {
		t.Fatalf("number = %q", resp.Number)
	}
	if resp.NumberDisplay != phone.FormatForDisplay(number) {
		t.Fatalf("display = %q", resp.NumberDisplay)
	}

	empty := ToCallLogResponse(repository.CallLog{ID: 2})
	if empty.Number != phone.NoNumber {
		t.Fatalf("expected %q, got %q", phone.NoNumber, empty.Number)
	}
}

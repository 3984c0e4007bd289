package scheduler

import (
	"context"
	"errors"
	"testing"

	"custodios_crm/platform/logger"

	"github.com/hibiken/asynq"
)

type recordingProcessor struct {
	got []CallOutcomePayload
	err error
}

func (p *recordingProcessor) RecordOutcome(_ context.Context, payload CallOutcomePayload) error {
	p.got = append(p.got, payload)
	return p.err
}

func TestCallOutcomeTaskRoundTrip(t *testing.T) {
	leadID := int64(42)
	task, err := NewCallOutcomeTask(CallOutcomePayload{CallID: "c-1", LeadID: &leadID, Outcome: "contactado"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskCallOutcomeRecorded {
		t.Fatalf("task type = %q", task.Type())
	}

	proc := &recordingProcessor{}
	w := &Worker{processor: proc, log: logger.Discard()}
	if err := w.HandleCallOutcome(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(proc.got) != 1 || proc.got[0].CallID != "c-1" || *proc.got[0].LeadID != 42 {
		t.Fatalf("unexpected payload %+v", proc.got)
	}
}

func TestHandleCallOutcomeSkipsRetryForBadPayload(t *testing.T) {
	w := &Worker{processor: &recordingProcessor{}, log: logger.Discard()}
	err := w.HandleCallOutcome(context.Background(), asynq.NewTask(TaskCallOutcomeRecorded, []byte("{not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}

	invalid := &recordingProcessor{err: ErrInvalidPayload}
	w = &Worker{processor: invalid, log: logger.Discard()}
	task, _ := NewCallOutcomeTask(CallOutcomePayload{})
	if err := w.HandleCallOutcome(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for invalid payload, got %v", err)
	}
}

func TestHandleCallOutcomeRetriesTransientErrors(t *testing.T) {
	boom := errors.New("db down")
	w := &Worker{processor: &recordingProcessor{err: boom}, log: logger.Discard()}
	task, _ := NewCallOutcomeTask(CallOutcomePayload{CallID: "c-2"})

	err := w.HandleCallOutcome(context.Background(), task)
	if !errors.Is(err, boom) || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestRedisClientOpt(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6380/2", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Addr != "localhost:6380" || opt.Password != "secret" || opt.DB != 2 || opt.TLSConfig != nil {
		t.Fatalf("unexpected opt %+v", opt)
	}

	opt, err = redisClientOpt("rediss://localhost:6380", true)
	if err != nil {
		t.Fatalf("parse tls: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatal("expected insecure TLS config")
	}
}

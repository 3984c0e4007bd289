package scheduler

import (
	"context"
	"errors"
	"fmt"

	"custodios_crm/platform/config"
	"custodios_crm/platform/logger"

	"github.com/hibiken/asynq"
)

// CallOutcomeProcessor stores a call outcome and applies it to the lead.
type CallOutcomeProcessor interface {
	RecordOutcome(ctx context.Context, payload CallOutcomePayload) error
}

// ErrInvalidPayload marks task payloads that can never succeed.
var ErrInvalidPayload = errors.New("invalid task payload")

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor CallOutcomeProcessor
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, processor CallOutcomeProcessor, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, errors.New("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			log.Error("task failed", "type", task.Type(), "error", err)
		}),
	})

	w := &Worker{
		server:    server,
		mux:       asynq.NewServeMux(),
		processor: processor,
		log:       log,
	}
	w.mux.HandleFunc(TaskCallOutcomeRecorded, w.HandleCallOutcome)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// HandleCallOutcome processes one calls.outcome.recorded task. Malformed
// payloads are skipped without retry.
func (w *Worker) HandleCallOutcome(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCallOutcomePayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v: %w", ErrInvalidPayload, err, asynq.SkipRetry)
	}

	if err := w.processor.RecordOutcome(ctx, payload); err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

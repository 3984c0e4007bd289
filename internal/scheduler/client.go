package scheduler

import (
	"context"
	"crypto/tls"
	"errors"

	"custodios_crm/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const maxCallOutcomeRetries = 5

type Client struct {
	client *asynq.Client
	queue  string
}

// CallOutcomeEnqueuer hands call outcomes to the worker.
type CallOutcomeEnqueuer interface {
	EnqueueCallOutcome(ctx context.Context, payload CallOutcomePayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueCallOutcome queues the outcome. Tasks with a call id are unique per
// call so a provider retrying its webhook does not queue the call twice.
func (c *Client) EnqueueCallOutcome(ctx context.Context, payload CallOutcomePayload) error {
	if c == nil || c.client == nil {
		return errors.New("scheduler client not configured")
	}

	task, err := NewCallOutcomeTask(payload)
	if err != nil {
		return err
	}

	opts := []asynq.Option{asynq.Queue(c.queue), asynq.MaxRetry(maxCallOutcomeRetries)}
	if payload.CallID != "" {
		opts = append(opts, asynq.TaskID(TaskCallOutcomeRecorded+":"+payload.CallID))
	}

	_, err = c.client.EnqueueContext(ctx, task, opts...)
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}

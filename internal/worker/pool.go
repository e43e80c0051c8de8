package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/dto"
	"github.com/DarkZone24/inventory-monitoring-system/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueLowStock = "jobs:low_stock"

	// MaxAttempts is how many delivery attempts a job gets before it is
	// moved to the dead letter queue. Attempts rejected by an open circuit
	// breaker never reach the relay and are not counted.
	MaxAttempts = 3

	jobTypeLowStock = "low_stock"
)

// Job is the envelope stored in the redis list.
type Job struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

// NewDispatcher accepts a nil client; every enqueue is then a no-op.
func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueLowStock satisfies service.StockAlerter.
func (d *Dispatcher) EnqueueLowStock(ctx context.Context, alert dto.LowStockAlert) error {
	if d == nil || d.rdb == nil {
		return nil
	}
	if err := d.enqueue(ctx, QueueLowStock, jobTypeLowStock, alert); err != nil {
		return err
	}
	infra.AlertJobs.WithLabelValues("enqueued").Inc()
	return nil
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{ID: uuid.NewString(), Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Processor handles one job payload. A returned error triggers a retry.
type Processor interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// PoolConfig tunes the worker pool.
type PoolConfig struct {
	Size int
	// RetryBackoff is the delay before the first retry; it doubles with
	// each counted attempt. Jobs deferred by an open breaker wait one backoff.
	RetryBackoff time.Duration
	// PollInterval is how often due retries are moved back onto the queue.
	PollInterval time.Duration
}

func DefaultPoolConfig(size int) PoolConfig {
	return PoolConfig{Size: size, RetryBackoff: 30 * time.Second, PollInterval: 5 * time.Second}
}

// Pool runs Size goroutines blocked on BRPOP (zero CPU when idle) plus one
// goroutine that promotes due retries.
type Pool struct {
	rdb       *redis.Client
	processor Processor
	cfg       PoolConfig
	wg        sync.WaitGroup
}

func NewPool(rdb *redis.Client, processor Processor, cfg PoolConfig) *Pool {
	def := DefaultPoolConfig(1)
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = def.RetryBackoff
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	return &Pool{rdb: rdb, processor: processor, cfg: cfg}
}

// Start launches the workers and the retry promoter. They exit when ctx is
// cancelled; Wait blocks until the last in-flight job finishes.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.cfg.Size; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.run(ctx, id)
		}(i)
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.runRetryPromoter(ctx, QueueLowStock)
	}()
	log.Info().Int("workers", p.cfg.Size).Str("queue", QueueLowStock).Msg("worker pool started")
}

func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
		}

		// Blocking pop: waits up to 5s then loops to check ctx
		result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueLowStock).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Warn().Err(err).Int("worker", id).Msg("brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		// Finish the job even if shutdown starts mid-way.
		p.handle(context.WithoutCancel(ctx), result[0], result[1])
	}
}

func (p *Pool) handle(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, p.rdb, queue, Job{Type: "unknown", Payload: json.RawMessage(`null`)}, "malformed job: "+err.Error())
		return
	}

	err := p.processor.Process(ctx, job.Payload)
	switch nextStep(&job, err) {
	case stepDone:
		infra.AlertJobs.WithLabelValues("sent").Inc()
	case stepDefer:
		infra.AlertJobs.WithLabelValues("deferred").Inc()
		p.scheduleRetry(ctx, queue, job, p.cfg.RetryBackoff)
	case stepRetry:
		infra.AlertJobs.WithLabelValues("retried").Inc()
		p.scheduleRetry(ctx, queue, job, backoff(p.cfg.RetryBackoff, job.Attempts))
	case stepDead:
		infra.AlertJobs.WithLabelValues("dead").Inc()
		SendToDLQ(ctx, p.rdb, queue, job, err.Error())
	}
}

type step int

const (
	stepDone step = iota
	stepRetry
	stepDefer
	stepDead
)

// nextStep decides what happens to job after a processing attempt. Only
// attempts that reached the relay are counted.
func nextStep(job *Job, err error) step {
	switch {
	case err == nil:
		job.Attempts++
		return stepDone
	case errors.Is(err, infra.ErrCircuitOpen):
		return stepDefer
	}
	job.Attempts++
	if job.Attempts >= MaxAttempts {
		return stepDead
	}
	return stepRetry
}

// backoff is base doubled for every attempt after the first.
func backoff(base time.Duration, attempts int) time.Duration {
	d := base
	for i := 1; i < attempts; i++ {
		d *= 2
	}
	return d
}

package worker

// Delayed retries. A failed job is parked in the sorted set
// {queue}:retry scored by its due time (unix ms); a ticker moves due
// members back onto the work queue.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	RetrySuffix    = ":retry"
	retryBatchSize = 50
)

func (p *Pool) scheduleRetry(ctx context.Context, queue string, job Job, delay time.Duration) {
	encoded, err := json.Marshal(job)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("retry: failed to marshal job")
		return
	}
	due := time.Now().Add(delay)
	z := redis.Z{Score: float64(due.UnixMilli()), Member: encoded}
	if err := p.rdb.ZAdd(ctx, queue+RetrySuffix, z).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("retry: failed to schedule job")
		return
	}
	log.Debug().
		Str("job_id", job.ID).
		Int("attempts", job.Attempts).
		Dur("delay", delay).
		Msg("retry: job scheduled")
}

func (p *Pool) runRetryPromoter(ctx context.Context, queue string) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("queue", queue).Msg("retry promoter shutting down")
			return
		case now := <-ticker.C:
			p.promoteDue(ctx, queue, now)
		}
	}
}

// promoteDue moves retries due at or before now back onto queue and returns
// how many it moved.
func (p *Pool) promoteDue(ctx context.Context, queue string, now time.Time) int {
	key := queue + RetrySuffix
	due, err := p.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Str("key", key).Msg("retry: failed to read due jobs")
		}
		return 0
	}

	moved := 0
	for _, member := range due {
		// Only the caller whose ZREM succeeds requeues the member.
		removed, err := p.rdb.ZRem(ctx, key, member).Result()
		if err != nil || removed == 0 {
			continue
		}
		if err := p.rdb.LPush(ctx, queue, member).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry: failed to requeue job")
			continue
		}
		moved++
	}
	if moved > 0 {
		log.Debug().Int("moved", moved).Str("queue", queue).Msg("retry: due jobs requeued")
	}
	return moved
}

// RetryLength returns the number of jobs waiting for a retry.
func RetryLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.ZCard(ctx, queue+RetrySuffix).Result()
}

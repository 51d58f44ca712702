package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

// Retry tuning for orphaned assets. An asset is dropped after MaxAttempts
// failed deletes; RetryBackoff is the pause after each requeue.
const (
	MaxAttempts  = 5
	PollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
	RetryBackoff = 5 * time.Second
)

// Destroyer removes an asset from the media provider.
type Destroyer interface {
	Destroy(ctx context.Context, publicID, resourceType string) (string, error)
}

// OrphanWorker retries provider deletes that failed during record updates.
// It also acts as the queue producer for MediaService.
type OrphanWorker struct {
	rdb      *redis.Client
	provider Destroyer
	queue    string
	backoff  time.Duration
	done     chan struct{}
	log      zerolog.Logger
}

// NewOrphanWorker creates a new OrphanWorker.
func NewOrphanWorker(rdb *redis.Client, provider Destroyer, log zerolog.Logger) *OrphanWorker {
	return &OrphanWorker{
		rdb:      rdb,
		provider: provider,
		queue:    config.WorkerKey.OrphanAssetQueue,
		backoff:  RetryBackoff,
		done:     make(chan struct{}),
		log:      log.With().Str("component", "orphan_worker").Logger(),
	}
}

// Enqueue pushes an asset onto the retry queue.
func (w *OrphanWorker) Enqueue(ctx context.Context, asset model.OrphanAsset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return err
	}
	return w.rdb.RPush(ctx, w.queue, data).Err()
}

// Done is closed once Start has returned.
func (w *OrphanWorker) Done() <-chan struct{} {
	return w.done
}

// Start begins the worker loop. Call in a goroutine, once. An asset popped
// before ctx is cancelled is pushed back when its delete does not complete.
func (w *OrphanWorker) Start(ctx context.Context) {
	defer close(w.done)
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		default:
		}

		// BLPop blocks for PollTimeout. Returns immediately if data exists.
		result, err := w.rdb.BLPop(ctx, PollTimeout, w.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			sleep(ctx, 3*time.Second)
			continue
		}
		if len(result) < 2 {
			continue
		}

		if retry := w.process(ctx, result[1]); retry != nil {
			w.requeue(ctx, retry)
		}
	}
}

// process handles one queued payload. It returns the asset to push back when
// the delete should be tried again.
func (w *OrphanWorker) process(ctx context.Context, raw string) *model.OrphanAsset {
	var asset model.OrphanAsset
	if err := json.Unmarshal([]byte(raw), &asset); err != nil {
		// Malformed JSON can never succeed.
		w.log.Error().Err(err).Str("data", raw).Msg("Discarding malformed payload")
		return nil
	}
	if asset.PublicID == "" {
		return nil
	}

	res, err := w.provider.Destroy(ctx, asset.PublicID, asset.ResourceType)
	if err != nil && ctx.Err() != nil {
		// Interrupted by shutdown; not a provider failure.
		return &asset
	}
	if err == nil {
		w.log.Info().
			Str("public_id", asset.PublicID).
			Str("result", res).
			Int("attempts", asset.Attempts+1).
			Msg("Orphaned asset removed")
		return nil
	}

	asset.Attempts++
	if asset.Attempts >= MaxAttempts {
		w.log.Error().Err(err).
			Str("public_id", asset.PublicID).
			Int("attempts", asset.Attempts).
			Msg("Giving up on orphaned asset")
		return nil
	}
	w.log.Warn().Err(err).
		Str("public_id", asset.PublicID).
		Int("attempts", asset.Attempts).
		Msg("Orphan delete failed, requeueing")
	return &asset
}

func (w *OrphanWorker) requeue(ctx context.Context, asset *model.OrphanAsset) {
	// The push must land even when shutdown has already cancelled ctx.
	if err := w.Enqueue(context.WithoutCancel(ctx), *asset); err != nil {
		w.log.Error().Err(err).Str("public_id", asset.PublicID).Msg("CRITICAL: failed to requeue orphaned asset")
		return
	}
	// Avoid hammering the provider while it is down.
	sleep(ctx, w.backoff)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

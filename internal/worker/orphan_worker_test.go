package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/model"
)

type fakeDestroyer struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (d *fakeDestroyer) Destroy(_ context.Context, publicID, _ string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, publicID)
	if d.err != nil {
		return "", d.err
	}
	return "ok", nil
}

func (d *fakeDestroyer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

// blockingDestroyer holds every delete until the caller's context ends.
type blockingDestroyer struct {
	started chan struct{}
}

func (d *blockingDestroyer) Destroy(ctx context.Context, _, _ string) (string, error) {
	close(d.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func queued(t *testing.T, rdb *redis.Client) []model.OrphanAsset {
	t.Helper()
	raw, err := rdb.LRange(context.Background(), config.WorkerKey.OrphanAssetQueue, 0, -1).Result()
	if err != nil {
		t.Fatalf("lrange: %v", err)
	}
	out := make([]model.OrphanAsset, 0, len(raw))
	for _, r := range raw {
		var a model.OrphanAsset
		if err := json.Unmarshal([]byte(r), &a); err != nil {
			t.Fatalf("decode queued asset: %v", err)
		}
		out = append(out, a)
	}
	return out
}

func waitDone(t *testing.T, w *OrphanWorker) {
	t.Helper()
	select {
	case <-w.Done():
	case <-time.After(PollTimeout + 5*time.Second):
		t.Fatalf("worker did not stop")
	}
}

func payload(t *testing.T, a model.OrphanAsset) string {
	t.Helper()
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestProcessRemovesAsset(t *testing.T) {
	d := &fakeDestroyer{}
	w := NewOrphanWorker(nil, d, zerolog.Nop())

	retry := w.process(context.Background(), payload(t, model.OrphanAsset{PublicID: "uploads/a", ResourceType: "image"}))
	if retry != nil {
		t.Fatalf("expected no retry, got %+v", retry)
	}
	if len(d.calls) != 1 || d.calls[0] != "uploads/a" {
		t.Fatalf("unexpected destroy calls %v", d.calls)
	}
}

func TestProcessRetriesUntilMaxAttempts(t *testing.T) {
	d := &fakeDestroyer{err: errors.New("provider down")}
	w := NewOrphanWorker(nil, d, zerolog.Nop())

	retry := w.process(context.Background(), payload(t, model.OrphanAsset{PublicID: "uploads/a"}))
	if retry == nil || retry.Attempts != 1 {
		t.Fatalf("expected retry with 1 attempt, got %+v", retry)
	}

	last := w.process(context.Background(), payload(t, model.OrphanAsset{PublicID: "uploads/a", Attempts: MaxAttempts - 1}))
	if last != nil {
		t.Fatalf("expected asset dropped after %d attempts, got %+v", MaxAttempts, last)
	}
}

func TestProcessDiscardsMalformedPayload(t *testing.T) {
	d := &fakeDestroyer{}
	w := NewOrphanWorker(nil, d, zerolog.Nop())

	if retry := w.process(context.Background(), "{not json"); retry != nil {
		t.Fatalf("malformed payload must not be retried")
	}
	if retry := w.process(context.Background(), `{"public_id":""}`); retry != nil {
		t.Fatalf("empty public_id must not be retried")
	}
	if len(d.calls) != 0 {
		t.Fatalf("provider should not be called, got %v", d.calls)
	}
}

func TestStartDrainsQueue(t *testing.T) {
	rdb := newTestRedis(t)
	d := &fakeDestroyer{}
	w := NewOrphanWorker(rdb, d, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Enqueue(ctx, model.OrphanAsset{PublicID: "uploads/a", ResourceType: "image"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	go w.Start(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for d.callCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("queued asset was never processed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	waitDone(t, w)

	if left := queued(t, rdb); len(left) != 0 {
		t.Fatalf("queue should be empty, got %+v", left)
	}
}

func TestShutdownRequeuesInFlightAsset(t *testing.T) {
	rdb := newTestRedis(t)
	d := &blockingDestroyer{started: make(chan struct{})}
	w := NewOrphanWorker(rdb, d, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Enqueue(ctx, model.OrphanAsset{PublicID: "uploads/a", Attempts: 2}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	go w.Start(ctx)

	select {
	case <-d.started:
	case <-time.After(5 * time.Second):
		t.Fatalf("delete never started")
	}
	cancel()
	waitDone(t, w)

	left := queued(t, rdb)
	if len(left) != 1 || left[0].PublicID != "uploads/a" {
		t.Fatalf("in-flight asset should be back on the queue, got %+v", left)
	}
	if left[0].Attempts != 2 {
		t.Fatalf("an interrupted delete must not count as an attempt, got %d", left[0].Attempts)
	}
}

func TestRequeueWithCancelledContext(t *testing.T) {
	rdb := newTestRedis(t)
	w := NewOrphanWorker(rdb, &fakeDestroyer{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.requeue(ctx, &model.OrphanAsset{PublicID: "uploads/b", Attempts: 1})

	left := queued(t, rdb)
	if len(left) != 1 || left[0].PublicID != "uploads/b" || left[0].Attempts != 1 {
		t.Fatalf("expected asset pushed back despite cancellation, got %+v", left)
	}
}

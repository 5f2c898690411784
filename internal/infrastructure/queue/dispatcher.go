package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/frenchreborn/province-chat/internal/api/metrics"
	"github.com/frenchreborn/province-chat/internal/core/domain"
	"github.com/frenchreborn/province-chat/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes moderation audit events to a fixed set of workers using
// consistent hashing on the province, guaranteeing per-province audit ordering.
// Audit persistence is best-effort and runs off the request path.
type Dispatcher struct {
	workers []chan domain.ModerationAction
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ModerationAction, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ModerationAction, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an action to the worker responsible for its province.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(action domain.ModerationAction) {
	idx := d.shardIndex(action.Province)
	d.workers[idx] <- action
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a province deterministically to a worker index.
func (d *Dispatcher) shardIndex(province string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(province))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ModerationAction) {
	for {
		select {
		case <-ctx.Done():
			return
		case action, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &action); err != nil {
				d.log.Error().Err(err).
					Str("action", action.Action).
					Str("province", action.Province).
					Int("worker_id", id).
					Msg("audit write failed")
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

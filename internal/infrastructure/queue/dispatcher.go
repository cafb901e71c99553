package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gachisikyeo/gongu-gateway/internal/api/metrics"
	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Deduper suppresses repeat writes for the same user and product within a
// short window. Optional; nil disables deduplication.
type Deduper interface {
	SeenRecently(ctx context.Context, userID, productID int64) bool
}

// Dispatcher routes product views to a fixed set of workers sharded by user
// id, so one user's views are persisted in the order they happened. Writes
// are asynchronous: a slow history store never delays a product page.
type Dispatcher struct {
	workers []chan domain.ProductView
	history ports.HistoryRepository
	dedup   Deduper
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, history ports.HistoryRepository, dedup Deduper, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ProductView, numWorkers),
		history: history,
		dedup:   dedup,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ProductView, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a view to the worker responsible for its user. Never blocks:
// when that worker's buffer is full the view is dropped and counted, so a
// stalled history store cannot stall a product page.
func (d *Dispatcher) Enqueue(view domain.ProductView) {
	idx := d.shardIndex(view.UserID)
	select {
	case d.workers[idx] <- view:
		metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.HistoryRecordsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Int64("user_id", view.UserID).
			Int64("product_id", view.ProductID).
			Int("worker_id", idx).
			Msg("history queue full, view dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	if userID < 0 {
		userID = -userID
	}
	return int(userID % int64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ProductView) {
	for {
		select {
		case <-ctx.Done():
			return
		case view, ok := <-ch:
			if !ok {
				return
			}
			metrics.HistoryQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			d.process(ctx, id, view)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, view domain.ProductView) {
	if d.dedup != nil && d.dedup.SeenRecently(ctx, view.UserID, view.ProductID) {
		return
	}
	if err := d.history.Record(ctx, view); err != nil {
		metrics.HistoryRecordsTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Int64("user_id", view.UserID).
			Int64("product_id", view.ProductID).
			Int("worker_id", workerID).
			Msg("product view write failed")
		return
	}
	metrics.HistoryRecordsTotal.WithLabelValues("ok").Inc()
}

var _ ports.HistoryRecorder = (*Dispatcher)(nil)

package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/redtable/pos-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher fans order lifecycle events out to a fixed set of workers using
// consistent hashing on the table number, so events for one table are always
// delivered in order while tables are processed in parallel.
type Dispatcher struct {
	workers []chan ports.OrderEvent
	sink    ports.OrderEventSink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.OrderEventSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OrderEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its table. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.OrderEvent) {
	d.workers[d.shardIndex(event.TableNum)] <- event
}

// shardIndex maps a table number deterministically to a worker index.
func (d *Dispatcher) shardIndex(tableNum int) int {
	if tableNum < 0 {
		tableNum = -tableNum
	}
	return tableNum % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Handle(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("order", strconv.FormatInt(event.OrderID, 10)).
					Int("worker_id", id).
					Msg("order event delivery failed")
			}
		}
	}
}

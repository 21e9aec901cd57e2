package gen

import (
	"container/heap"
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"salestream/internal/clock"
	"salestream/internal/models"
	"salestream/internal/sink"
	"salestream/internal/stats"
)

// Options fixes a scheduler run. MinDelay/MaxDelay bound the spacing
// between new-order arrivals.
type Options struct {
	Duration time.Duration
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Scheduler owns the run timeline: a single due-time priority queue
// holding both order arrivals and per-order transitions, processed
// strictly in due order by one goroutine. That single emit path is what
// keeps each order's events in creation order at every sink.
type Scheduler struct {
	opts    Options
	rng     *rand.Rand
	clk     clock.Clock
	factory *Factory
	life    *Lifecycle
	out     sink.Sink
	stats   *stats.Collector
	log     zerolog.Logger

	queue  eventQueue
	orders map[string]*models.Order
	seq    uint64
}

func NewScheduler(opts Options, rng *rand.Rand, clk clock.Clock, factory *Factory, life *Lifecycle, out sink.Sink, st *stats.Collector, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		opts:    opts,
		rng:     rng,
		clk:     clk,
		factory: factory,
		life:    life,
		out:     out,
		stats:   st,
		log:     log,
		orders:  make(map[string]*models.Order),
	}
}

// Run drives the timeline until the configured duration elapses or ctx is
// cancelled. Deadline policy is cut-off: events due past the deadline are
// discarded and in-flight orders stop where they are. A non-nil error
// means a broken invariant in the generator itself, not a sink problem.
func (s *Scheduler) Run(ctx context.Context) error {
	start := s.clk.Now()
	deadline := start.Add(s.opts.Duration)

	s.log.Info().
		Time("deadline", deadline).
		Dur("min_delay", s.opts.MinDelay).
		Dur("max_delay", s.opts.MaxDelay).
		Msg("run started")

	s.push(&timedEvent{due: start.Add(s.arrivalDelay()), kind: kindArrival})

	for s.queue.Len() > 0 {
		head := s.queue[0]
		if !head.due.Before(deadline) {
			break
		}
		if err := s.clk.SleepUntil(ctx, head.due); err != nil {
			s.log.Info().Msg("stop requested, cutting off in-flight orders")
			break
		}
		it := heap.Pop(&s.queue).(*timedEvent)

		var err error
		switch it.kind {
		case kindArrival:
			err = s.handleArrival(ctx, it.due, deadline)
		case kindTransition:
			err = s.handleTransition(ctx, it)
		}
		if err != nil {
			return err
		}
	}

	s.log.Info().Int("in_flight", len(s.orders)).Msg("run finished")
	return nil
}

func (s *Scheduler) handleArrival(ctx context.Context, at time.Time, deadline time.Time) error {
	order := s.factory.Create()
	s.orders[order.ID] = order

	if err := s.emit(ctx, order, order.History[0].At); err != nil {
		return err
	}

	next, err := s.life.Next(order.Status)
	if err != nil {
		return err
	}
	s.push(&timedEvent{due: at.Add(next.Delay), kind: kindTransition, orderID: order.ID, next: next})

	if due := at.Add(s.arrivalDelay()); due.Before(deadline) {
		s.push(&timedEvent{due: due, kind: kindArrival})
	}
	return nil
}

func (s *Scheduler) handleTransition(ctx context.Context, it *timedEvent) error {
	order, ok := s.orders[it.orderID]
	if !ok {
		return fmt.Errorf("scheduler: transition for unknown order %s", it.orderID)
	}
	if err := order.Apply(it.next, it.due); err != nil {
		return err
	}
	if err := s.emit(ctx, order, it.due); err != nil {
		return err
	}

	if order.Status.Terminal() {
		delete(s.orders, order.ID)
		return nil
	}
	next, err := s.life.Next(order.Status)
	if err != nil {
		return err
	}
	s.push(&timedEvent{due: it.due.Add(next.Delay), kind: kindTransition, orderID: order.ID, next: next})
	return nil
}

// emit snapshots, validates, delivers and records one event. Sink errors
// are logged and counted but never stop the run; a validation failure is
// a generator defect and aborts.
func (s *Scheduler) emit(ctx context.Context, order *models.Order, at time.Time) error {
	ev := order.Event(at)
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("scheduler: invariant violation: %w", err)
	}
	if err := s.out.Emit(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("order_id", ev.OrderID).Str("status", string(ev.Status)).Msg("emit failed")
		s.stats.SinkFailure()
	}
	s.stats.Record(ev)
	return nil
}

func (s *Scheduler) arrivalDelay() time.Duration {
	spread := s.opts.MaxDelay - s.opts.MinDelay
	if spread <= 0 {
		return s.opts.MinDelay
	}
	return s.opts.MinDelay + time.Duration(s.rng.Float64()*float64(spread))
}

func (s *Scheduler) push(it *timedEvent) {
	it.seq = s.seq
	s.seq++
	heap.Push(&s.queue, it)
}

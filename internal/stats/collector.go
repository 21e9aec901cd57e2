package stats

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"salestream/internal/models"
)

// Collector aggregates run statistics from the emitted event stream. It
// is mutex-guarded because sink failure callbacks may land off the
// scheduling goroutine.
type Collector struct {
	mu sync.Mutex

	started      time.Time
	created      int
	emitted      int
	byStatus     map[models.Status]int
	revenue      float64
	sinkFailures int

	// per-order state, dropped once the order reaches a terminal status
	// so memory stays bounded by the number of in-flight orders.
	current   map[string]models.Status
	firstSeen map[string]time.Time

	shippedCount int
	shippedTime  time.Duration
}

func NewCollector(start time.Time) *Collector {
	return &Collector{
		started:   start,
		byStatus:  make(map[models.Status]int),
		current:   make(map[string]models.Status),
		firstSeen: make(map[string]time.Time),
	}
}

// Record folds one emitted event into the counters.
func (c *Collector) Record(ev models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := ev.Timestamp.Time()
	c.emitted++
	eventsTotal.WithLabelValues(string(ev.Status)).Inc()

	prev, known := c.current[ev.OrderID]
	if !known {
		c.created++
		c.firstSeen[ev.OrderID] = ts
		activeOrders.Inc()
	} else {
		c.byStatus[prev]--
	}
	c.byStatus[ev.Status]++
	c.current[ev.OrderID] = ev.Status

	if ev.Status == models.StatusShipped {
		// revenue counts shipped orders only, exactly once per order
		c.revenue += ev.Total
		if first, ok := c.firstSeen[ev.OrderID]; ok {
			c.shippedCount++
			c.shippedTime += ts.Sub(first)
		}
	}
	if ev.Status.Terminal() {
		delete(c.current, ev.OrderID)
		delete(c.firstSeen, ev.OrderID)
		activeOrders.Dec()
	}
}

// SinkFailure counts one failed emission.
func (c *Collector) SinkFailure() {
	c.mu.Lock()
	c.sinkFailures++
	c.mu.Unlock()
	sinkFailures.Inc()
}

// Summary is a point-in-time snapshot of the run statistics.
type Summary struct {
	OrdersCreated  int
	EventsEmitted  int
	ByStatus       map[models.Status]int
	Revenue        float64
	SinkFailures   int
	AvgFulfillment time.Duration
	Elapsed        time.Duration
}

func (c *Collector) Summary(now time.Time) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	by := make(map[models.Status]int, len(c.byStatus))
	for k, v := range c.byStatus {
		by[k] = v
	}
	s := Summary{
		OrdersCreated: c.created,
		EventsEmitted: c.emitted,
		ByStatus:      by,
		Revenue:       c.revenue,
		SinkFailures:  c.sinkFailures,
		Elapsed:       now.Sub(c.started),
	}
	if c.shippedCount > 0 {
		s.AvgFulfillment = c.shippedTime / time.Duration(c.shippedCount)
	}
	return s
}

// String renders the human-readable shutdown report.
func (s Summary) String() string {
	var b strings.Builder
	line := strings.Repeat("=", 60)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "generator finished")
	fmt.Fprintf(&b, "orders created:     %d\n", s.OrdersCreated)
	fmt.Fprintf(&b, "events emitted:     %d\n", s.EventsEmitted)
	for _, st := range models.Statuses {
		if n := s.ByStatus[st]; n > 0 {
			fmt.Fprintf(&b, "  %-12s %d\n", st+":", n)
		}
	}
	fmt.Fprintf(&b, "revenue (shipped):  $%.2f\n", s.Revenue)
	if s.AvgFulfillment > 0 {
		fmt.Fprintf(&b, "avg fulfillment:    %s\n", s.AvgFulfillment.Round(time.Millisecond))
	}
	fmt.Fprintf(&b, "sink failures:      %d\n", s.SinkFailures)
	fmt.Fprintf(&b, "elapsed:            %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(&b, line)
	return b.String()
}

package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestream/internal/models"
)

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func ev(orderID string, status models.Status, at time.Time, total float64) models.Event {
	e := models.Event{
		OrderID:   orderID,
		Timestamp: models.Timestamp(at),
		Quantity:  1,
		Price:     total,
		Total:     total,
		Status:    status,
	}
	if status == models.StatusCancelled {
		reason := "customer_cancelled"
		e.CancellationReason = &reason
	}
	return e
}

func TestCollectorShippedOrder(t *testing.T) {
	c := NewCollector(start)

	c.Record(ev("ORD-1", models.StatusPending, start, 99.50))
	c.Record(ev("ORD-1", models.StatusConfirmed, start.Add(10*time.Second), 99.50))
	c.Record(ev("ORD-1", models.StatusProcessing, start.Add(30*time.Second), 99.50))
	c.Record(ev("ORD-1", models.StatusShipped, start.Add(60*time.Second), 99.50))

	sum := c.Summary(start.Add(2 * time.Minute))
	assert.Equal(t, 1, sum.OrdersCreated)
	assert.Equal(t, 4, sum.EventsEmitted)
	assert.Equal(t, 1, sum.ByStatus[models.StatusShipped])
	assert.Zero(t, sum.ByStatus[models.StatusPending])
	assert.InDelta(t, 99.50, sum.Revenue, 0.001)
	assert.Equal(t, time.Minute, sum.AvgFulfillment)
	assert.Equal(t, 2*time.Minute, sum.Elapsed)
}

func TestCollectorRevenueSkipsCancelled(t *testing.T) {
	c := NewCollector(start)

	c.Record(ev("ORD-1", models.StatusPending, start, 40))
	c.Record(ev("ORD-1", models.StatusCancelled, start.Add(15*time.Second), 40))
	c.Record(ev("ORD-2", models.StatusPending, start.Add(time.Second), 60))

	sum := c.Summary(start.Add(time.Minute))
	assert.Equal(t, 2, sum.OrdersCreated)
	assert.Zero(t, sum.Revenue)
	assert.Zero(t, sum.AvgFulfillment)
	assert.Equal(t, 1, sum.ByStatus[models.StatusCancelled])
	assert.Equal(t, 1, sum.ByStatus[models.StatusPending])
}

func TestCollectorStatusCountsSumToCreated(t *testing.T) {
	c := NewCollector(start)

	at := start
	orders := []struct {
		id   string
		path []models.Status
	}{
		{"ORD-1", []models.Status{models.StatusPending, models.StatusConfirmed, models.StatusProcessing, models.StatusShipped}},
		{"ORD-2", []models.Status{models.StatusPending, models.StatusCancelled}},
		{"ORD-3", []models.Status{models.StatusPending, models.StatusConfirmed}},
		{"ORD-4", []models.Status{models.StatusPending}},
	}
	for _, o := range orders {
		for _, s := range o.path {
			at = at.Add(time.Second)
			c.Record(ev(o.id, s, at, 10))
		}
	}

	sum := c.Summary(at)
	total := 0
	for _, n := range sum.ByStatus {
		total += n
	}
	assert.Equal(t, 4, sum.OrdersCreated)
	assert.Equal(t, 4, total)
	assert.Equal(t, 1, sum.ByStatus[models.StatusShipped])
	assert.Equal(t, 1, sum.ByStatus[models.StatusCancelled])
	assert.Equal(t, 1, sum.ByStatus[models.StatusConfirmed])
	assert.Equal(t, 1, sum.ByStatus[models.StatusPending])
}

func TestCollectorBoundedMemory(t *testing.T) {
	c := NewCollector(start)

	c.Record(ev("ORD-1", models.StatusPending, start, 10))
	c.Record(ev("ORD-1", models.StatusCancelled, start.Add(time.Second), 10))

	assert.Empty(t, c.current)
	assert.Empty(t, c.firstSeen)
}

func TestCollectorSinkFailures(t *testing.T) {
	c := NewCollector(start)
	c.SinkFailure()
	c.SinkFailure()
	assert.Equal(t, 2, c.Summary(start).SinkFailures)
}

func TestSummaryString(t *testing.T) {
	c := NewCollector(start)
	c.Record(ev("ORD-1", models.StatusPending, start, 25))
	c.Record(ev("ORD-1", models.StatusConfirmed, start.Add(10*time.Second), 25))
	c.SinkFailure()

	out := c.Summary(start.Add(30 * time.Second)).String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "orders created:     1")
	assert.Contains(t, out, "confirmed:")
	assert.Contains(t, out, "sink failures:      1")
	assert.NotContains(t, out, "pending:")
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), strings.Repeat("=", 60)))
}

package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestream/internal/models"
)

func hubEvent(id string, at time.Time) models.Event {
	return models.Event{
		OrderID:   id,
		Timestamp: models.Timestamp(at),
		Quantity:  1,
		Price:     10,
		Total:     10,
		Status:    models.StatusPending,
	}
}

func TestHubFanOut(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := h.Subscribe(ctx, 4)
	b := h.Subscribe(ctx, 4)

	ev := hubEvent("ORD-1", time.Now())
	h.Publish(ev)

	assert.Equal(t, ev.OrderID, (<-a).OrderID)
	assert.Equal(t, ev.OrderID, (<-b).OrderID)
}

func TestHubNeverBlocksOnSlowSubscriber(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slow := h.Subscribe(ctx, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish(hubEvent("ORD-1", time.Now()))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	// the slow subscriber still got the first event
	assert.Equal(t, "ORD-1", (<-slow).OrderID)
}

func TestHubReplaySince(t *testing.T) {
	h := NewHub()
	now := time.Now()
	h.Publish(hubEvent("ORD-1", now.Add(-2*time.Minute)))
	h.Publish(hubEvent("ORD-2", now.Add(-30*time.Second)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := h.Subscribe(ctx, 8)
	h.ReplaySince(now.Add(-time.Minute), sub)

	require.Len(t, sub, 1)
	assert.Equal(t, "ORD-2", (<-sub).OrderID)
}

func TestHubEmitIsASink(t *testing.T) {
	h := NewHub()
	assert.NoError(t, h.Emit(context.Background(), hubEvent("ORD-1", time.Now())))
	assert.NoError(t, h.Close())
}

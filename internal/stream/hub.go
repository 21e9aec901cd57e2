package stream

import (
	"context"
	"sync"
	"time"

	"salestream/internal/models"
)

type Subscriber chan models.Event

// Hub fans emitted events out to live subscribers (SSE, WS) and keeps a
// bounded replay history. Subscriber channels never block the publisher:
// a full buffer drops the event for that subscriber only, because a slow
// viewer must not stall generation.
type Hub struct {
	mu   sync.RWMutex
	subs map[Subscriber]struct{}

	hmu     sync.RWMutex
	hist    []models.Event
	histMax int
	histTTL time.Duration
}

func NewHub() *Hub {
	return &Hub{
		subs:    make(map[Subscriber]struct{}),
		hist:    make([]models.Event, 0, 5000),
		histMax: 5000,
		histTTL: time.Hour,
	}
}

func (h *Hub) Subscribe(ctx context.Context, buf int) Subscriber {
	ch := make(Subscriber, buf)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	subsGauge.Inc()
	h.mu.Unlock()
	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		subsGauge.Dec()
		h.mu.Unlock()
	}()
	return ch
}

func (h *Hub) Publish(ev models.Event) {
	h.mu.RLock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			dropsCtr.Inc()
		}
	}
	h.mu.RUnlock()

	h.hmu.Lock()
	h.hist = append(h.hist, ev)
	if len(h.hist) > h.histMax {
		h.hist = h.hist[len(h.hist)-h.histMax:]
	}
	cut := time.Now().Add(-h.histTTL)
	i := 0
	for ; i < len(h.hist) && h.hist[i].Timestamp.Time().Before(cut); i++ {
	}
	if i > 0 && i < len(h.hist) {
		h.hist = h.hist[i:]
	}
	h.hmu.Unlock()
}

func (h *Hub) ReplaySince(since time.Time, out Subscriber) {
	h.hmu.RLock()
	defer h.hmu.RUnlock()
	for _, ev := range h.hist {
		if ev.Timestamp.Time().After(since) {
			select {
			case out <- ev:
			default:
			}
		}
	}
}

// Emit makes the hub usable as an output sink; publishing to live
// subscribers never fails.
func (h *Hub) Emit(_ context.Context, ev models.Event) error {
	h.Publish(ev)
	return nil
}

func (h *Hub) Close() error { return nil }

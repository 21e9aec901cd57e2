package gen

import (
	"time"

	"salestream/internal/models"
)

type eventKind int

const (
	kindArrival eventKind = iota
	kindTransition
)

// timedEvent is one pending entry on the scheduler timeline: either the
// arrival of a new order or a scheduled transition of an existing one.
type timedEvent struct {
	due  time.Time
	seq  uint64
	kind eventKind

	// transition fields
	orderID string
	next    models.Transition
}

// eventQueue is a min-heap keyed by due time, ties broken by insertion
// order. Used with container/heap.
type eventQueue []*timedEvent

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*timedEvent)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

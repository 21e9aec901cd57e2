package sink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestream/internal/models"
)

func sampleEvent() models.Event {
	return models.Event{
		OrderID:       "ORD-12345678",
		Timestamp:     models.Timestamp(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)),
		ProductID:     "PROD-004",
		ProductName:   "USB-C Cable",
		Quantity:      3,
		Price:         9.99,
		Total:         29.97,
		CustomerID:    "CUST-123456",
		CustomerEmail: "x@example.com",
		PaymentMethod: "apple_pay",
		Status:        models.StatusPending,
	}
}

type recording struct{ events []models.Event }

func (r *recording) Emit(_ context.Context, ev models.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func (r *recording) Close() error { return nil }

type failing struct{}

func (failing) Emit(context.Context, models.Event) error { return errors.New("unreachable") }
func (failing) Close() error                             { return nil }

func TestConsoleWritesOneJSONLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	require.NoError(t, c.Emit(context.Background(), sampleEvent()))
	require.NoError(t, c.Emit(context.Background(), sampleEvent()))

	sc := bufio.NewScanner(&buf)
	lines := 0
	for sc.Scan() {
		lines++
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		assert.Equal(t, "ORD-12345678", m["order_id"])
		assert.Equal(t, "2025-01-01T12:00:00.000000Z", m["timestamp"])
		assert.Nil(t, m["cancellation_reason"])
	}
	assert.Equal(t, 2, lines)
}

func TestCompositeDeliversPastFailure(t *testing.T) {
	rec := &recording{}
	c := Composite{failing{}, rec, failing{}}

	err := c.Emit(context.Background(), sampleEvent())
	assert.Error(t, err)
	require.Len(t, rec.events, 1, "healthy sinks still receive the event")
}

func TestCompositeEmptyNeverFails(t *testing.T) {
	var c Composite
	assert.NoError(t, c.Emit(context.Background(), sampleEvent()))
	assert.NoError(t, c.Close())
}

func TestFileAppendsNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events", "run.ndjson")
	f, err := NewFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Emit(context.Background(), sampleEvent()))
	require.NoError(t, f.Emit(context.Background(), sampleEvent()))
	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var ev models.Event
		require.NoError(t, json.Unmarshal(line, &ev))
		assert.NoError(t, ev.Validate())
	}
}

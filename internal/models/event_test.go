package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() Event {
	return Event{
		OrderID:       "ORD-12345678",
		Timestamp:     Timestamp(time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)),
		ProductID:     "PROD-001",
		ProductName:   "Wireless Bluetooth Headphones",
		Quantity:      2,
		Price:         49.99,
		Total:         99.98,
		CustomerID:    "CUST-100001",
		CustomerEmail: "jane@example.com",
		PaymentMethod: "credit_card",
		ShippingAddress: Address{
			Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "USA",
		},
		Status: StatusPending,
	}
}

func TestTimestampFormat(t *testing.T) {
	ev := validEvent()
	b, err := json.Marshal(ev.Timestamp)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-02T03:04:05.123456Z"`, string(b))

	var back Timestamp
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Time().Equal(time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC)))
}

func TestEventJSONSchema(t *testing.T) {
	b, err := json.Marshal(validEvent())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, key := range []string{
		"order_id", "timestamp", "product_id", "product_name", "quantity",
		"price", "total", "customer_id", "customer_email", "payment_method",
		"shipping_address", "status", "cancellation_reason",
	} {
		assert.Contains(t, m, key)
	}
	assert.Nil(t, m["cancellation_reason"])

	addr, ok := m["shipping_address"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"street", "city", "state", "zip_code", "country"} {
		assert.Contains(t, addr, key)
	}
}

func TestEventValidate(t *testing.T) {
	reason := "payment_failed"

	tests := []struct {
		name   string
		mutate func(*Event)
		ok     bool
	}{
		{"valid pending", func(e *Event) {}, true},
		{"valid cancelled", func(e *Event) {
			e.Status = StatusCancelled
			e.CancellationReason = &reason
		}, true},
		{"zero quantity", func(e *Event) { e.Quantity = 0 }, false},
		{"total mismatch", func(e *Event) { e.Total = e.Total + 1 }, false},
		{"total within tolerance", func(e *Event) { e.Total = e.Total + 0.009 }, true},
		{"reason without cancellation", func(e *Event) { e.CancellationReason = &reason }, false},
		{"cancellation without reason", func(e *Event) { e.Status = StatusCancelled }, false},
		{"empty order id", func(e *Event) { e.OrderID = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := validEvent()
			tt.mutate(&ev)
			err := ev.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

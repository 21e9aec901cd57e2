package models

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// timestampLayout is ISO-8601 UTC with microsecond precision, the format
// the downstream pipeline expects.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp marshals as an ISO-8601 UTC string with microseconds.
type Timestamp time.Time

func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(t).UTC().Format(timestampLayout))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Event is the immutable per-transition snapshot emitted to sinks. The
// field set and JSON names are a stable contract with the downstream
// analytics pipeline.
type Event struct {
	OrderID            string    `json:"order_id"`
	Timestamp          Timestamp `json:"timestamp"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	Quantity           int       `json:"quantity"`
	Price              float64   `json:"price"`
	Total              float64   `json:"total"`
	CustomerID         string    `json:"customer_id"`
	CustomerEmail      string    `json:"customer_email"`
	PaymentMethod      string    `json:"payment_method"`
	ShippingAddress    Address   `json:"shipping_address"`
	Status             Status    `json:"status"`
	CancellationReason *string   `json:"cancellation_reason"`
}

// Validate checks the schema invariants. A failure means the generator
// itself is broken and the run must not continue.
func (e *Event) Validate() error {
	if e.OrderID == "" {
		return fmt.Errorf("event: empty order_id")
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("event %s: quantity %d", e.OrderID, e.Quantity)
	}
	if diff := math.Abs(e.Total - e.Price*float64(e.Quantity)); diff > 0.01 {
		return fmt.Errorf("event %s: total %.2f != price %.2f * quantity %d", e.OrderID, e.Total, e.Price, e.Quantity)
	}
	if (e.Status == StatusCancelled) != (e.CancellationReason != nil) {
		return fmt.Errorf("event %s: cancellation_reason set=%t with status %q", e.OrderID, e.CancellationReason != nil, e.Status)
	}
	return nil
}

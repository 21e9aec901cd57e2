package models

import (
	"fmt"
	"time"
)

// Status is a stage in the order lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every lifecycle stage, in flow order, terminals last.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusCancelled}

// Terminal reports whether no further transition is defined for s.
func (s Status) Terminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type Customer struct {
	ID      string
	Email   string
	Address Address
}

// StatusChange is one entry in an order's append-only history.
type StatusChange struct {
	Status Status
	At     time.Time
}

// Transition is a lifecycle decision: the status an order moves to next,
// how long it stays in its current status first, and the cancellation
// reason when the outcome is a cancellation.
type Transition struct {
	Status Status
	Reason string
	Delay  time.Duration
}

// Order is the mutable record owned by the scheduler until it reaches a
// terminal status. Everything except Status, CancellationReason and
// History is fixed at creation.
type Order struct {
	ID                 string
	Product            Product
	Quantity           int
	Price              float64
	Total              float64
	Customer           Customer
	PaymentMethod      string
	Status             Status
	CancellationReason string
	History            []StatusChange
}

// Apply advances the order per t at the given time. It refuses to move a
// terminal order or to rewind the history clock; either means a defect in
// the caller, not bad input.
func (o *Order) Apply(t Transition, at time.Time) error {
	if o.Status.Terminal() {
		return fmt.Errorf("order %s: transition out of terminal status %q", o.ID, o.Status)
	}
	if n := len(o.History); n > 0 && !at.After(o.History[n-1].At) {
		return fmt.Errorf("order %s: non-increasing status timestamp %s", o.ID, at)
	}
	o.Status = t.Status
	if t.Status == StatusCancelled {
		o.CancellationReason = t.Reason
	}
	o.History = append(o.History, StatusChange{Status: t.Status, At: at})
	return nil
}

// Event snapshots the order as of the transition at ts.
func (o *Order) Event(ts time.Time) Event {
	ev := Event{
		OrderID:         o.ID,
		Timestamp:       Timestamp(ts),
		ProductID:       o.Product.ID,
		ProductName:     o.Product.Name,
		Quantity:        o.Quantity,
		Price:           o.Price,
		Total:           o.Total,
		CustomerID:      o.Customer.ID,
		CustomerEmail:   o.Customer.Email,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.Customer.Address,
		Status:          o.Status,
	}
	if o.Status == StatusCancelled {
		reason := o.CancellationReason
		ev.CancellationReason = &reason
	}
	return ev
}

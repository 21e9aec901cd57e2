package sink

import (
	"context"
	"errors"

	"salestream/internal/models"
)

// Sink receives emitted events. Emit must not panic and must not block
// indefinitely; a returned error is counted and logged by the caller,
// never fatal.
type Sink interface {
	Emit(ctx context.Context, ev models.Event) error
	Close() error
}

// Composite fans each event out to an ordered set of sinks. A failing
// sink never prevents delivery to the others; per-sink errors are joined.
type Composite []Sink

func (c Composite) Emit(ctx context.Context, ev models.Event) error {
	var errs []error
	for _, s := range c {
		if err := s.Emit(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c Composite) Close() error {
	var errs []error
	for _, s := range c {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

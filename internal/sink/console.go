package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"salestream/internal/models"
)

// Console writes one JSON line per event, normally to stdout.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Emit(_ context.Context, ev models.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	_, err = fmt.Fprintln(c.w, string(b))
	return err
}

func (c *Console) Close() error { return nil }

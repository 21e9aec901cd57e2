package gen

import (
	"fmt"
	"math/rand/v2"
	"time"

	"salestream/internal/models"
)

// cancelProbability is the chance an order is cancelled instead of
// advancing, checked once per non-terminal transition. Simulates payment
// failures, inventory problems and customer cancellations.
const cancelProbability = 0.08

type delayRange struct {
	min, max time.Duration
}

// Per-stage dwell times before the next transition. Later stages take
// longer, mirroring real fulfillment.
var stageDelays = map[models.Status]delayRange{
	models.StatusPending:    {10 * time.Second, 30 * time.Second},
	models.StatusConfirmed:  {15 * time.Second, 45 * time.Second},
	models.StatusProcessing: {20 * time.Second, 60 * time.Second},
}

var advances = map[models.Status]models.Status{
	models.StatusPending:    models.StatusConfirmed,
	models.StatusConfirmed:  models.StatusProcessing,
	models.StatusProcessing: models.StatusShipped,
}

// Cancellation reasons plausible for the stage the order is leaving.
var cancelReasons = map[models.Status][]string{
	models.StatusPending:    {"payment_failed", "payment_declined", "customer_cancelled", "fraud_suspected"},
	models.StatusConfirmed:  {"inventory_unavailable", "customer_cancelled", "payment_verification_failed", "address_invalid"},
	models.StatusProcessing: {"customer_cancelled", "inventory_damaged", "shipping_address_unreachable", "customer_requested_cancellation"},
}

// Lifecycle decides the next step for an order. All randomness comes from
// the injected rng so runs replay deterministically under a fixed seed.
type Lifecycle struct {
	rng *rand.Rand
}

func NewLifecycle(rng *rand.Rand) *Lifecycle {
	return &Lifecycle{rng: rng}
}

// Next returns the transition an order in status s will take and how long
// it dwells in s first. Calling it for a terminal status is a defect.
func (l *Lifecycle) Next(s models.Status) (models.Transition, error) {
	if s.Terminal() {
		return models.Transition{}, fmt.Errorf("lifecycle: no transition from terminal status %q", s)
	}
	next, ok := advances[s]
	if !ok {
		return models.Transition{}, fmt.Errorf("lifecycle: unknown status %q", s)
	}

	r := stageDelays[s]
	delay := r.min + time.Duration(l.rng.Float64()*float64(r.max-r.min))

	if l.rng.Float64() < cancelProbability {
		reasons := cancelReasons[s]
		return models.Transition{
			Status: models.StatusCancelled,
			Reason: reasons[l.rng.IntN(len(reasons))],
			Delay:  delay,
		}, nil
	}
	return models.Transition{Status: next, Delay: delay}, nil
}

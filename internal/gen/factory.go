package gen

import (
	"fmt"
	"math"
	"math/rand/v2"

	"salestream/internal/clock"
	"salestream/internal/models"
)

// AttributeSource supplies fake customer identity and address values.
// *gofakeit.Faker satisfies it.
type AttributeSource interface {
	Email() string
	Street() string
	City() string
	StateAbr() string
	Zip() string
	CountryAbr() string
}

// Factory builds new orders in their initial pending state. It does not
// emit or schedule anything.
type Factory struct {
	rng  *rand.Rand
	fake AttributeSource
	clk  clock.Clock
	used map[string]struct{}
}

func NewFactory(rng *rand.Rand, fake AttributeSource, clk clock.Clock) *Factory {
	return &Factory{rng: rng, fake: fake, clk: clk, used: make(map[string]struct{})}
}

// Create returns a fresh pending order with a run-unique id.
func (f *Factory) Create() *models.Order {
	product := models.Catalog[f.rng.IntN(len(models.Catalog))]
	quantity := 1 + f.rng.IntN(5)
	price := round2(product.MinPrice + f.rng.Float64()*(product.MaxPrice-product.MinPrice))
	now := f.clk.Now()

	return &models.Order{
		ID:       f.orderID(),
		Product:  product,
		Quantity: quantity,
		Price:    price,
		Total:    round2(price * float64(quantity)),
		Customer: models.Customer{
			ID:    fmt.Sprintf("CUST-%06d", 100000+f.rng.IntN(900000)),
			Email: f.fake.Email(),
			Address: models.Address{
				Street:  f.fake.Street(),
				City:    f.fake.City(),
				State:   f.fake.StateAbr(),
				ZipCode: f.fake.Zip(),
				Country: f.fake.CountryAbr(),
			},
		},
		PaymentMethod: models.PaymentMethods[f.rng.IntN(len(models.PaymentMethods))],
		Status:        models.StatusPending,
		History:       []models.StatusChange{{Status: models.StatusPending, At: now}},
	}
}

// orderID draws 8-digit ids until it finds one unused this run.
func (f *Factory) orderID() string {
	for {
		id := fmt.Sprintf("ORD-%08d", 10000000+f.rng.IntN(90000000))
		if _, taken := f.used[id]; !taken {
			f.used[id] = struct{}{}
			return id
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package stats

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "salestream_events_total",
		Help: "events emitted, by status",
	}, []string{"status"})
	sinkFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salestream_sink_failures_total",
		Help: "failed event emissions",
	})
	activeOrders = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "salestream_active_orders",
		Help: "orders not yet shipped or cancelled",
	})
)

func init() { prometheus.MustRegister(eventsTotal, sinkFailures, activeOrders) }

package stream

import "github.com/prometheus/client_golang/prometheus"

var (
	subsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "salestream_subscribers",
		Help: "active live-view subscribers",
	})
	dropsCtr = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salestream_dropped_messages_total",
		Help: "events dropped to slow subscribers",
	})
)

func init() { prometheus.MustRegister(subsGauge, dropsCtr) }

package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	SpfComputations = metric.NewCounter("10s1s")
	// ScenarioLatency is in microseconds
	ScenarioLatency = metric.NewHistogram("1m1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("ffscan:SpfComputations", SpfComputations)
	expvar.Publish("ffscan:ScenarioLatency (µs)", ScenarioLatency)
}

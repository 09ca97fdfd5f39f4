package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are declared across chat.go, credits.go and http.go; each
// file enqueues its set from init() and MustRegister flushes the queue
// into the default registry. Deferring registration keeps file init
// order irrelevant and lets tests import this package without touching
// the global registry.

var (
	registerOnce sync.Once
	pending      []prometheus.Collector
)

func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister installs every enqueued collector. Call it once from
// main before the HTTP server starts; later calls are no-ops.
func MustRegister() {
	registerOnce.Do(func() {
		if len(pending) > 0 {
			prometheus.MustRegister(pending...)
		}
	})
}

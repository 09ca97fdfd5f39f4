package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	creditsConsumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_consumed_total",
			Help: "Credits successfully consumed.",
		},
	)

	creditsGranted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_granted_total",
			Help: "Credits granted through purchases.",
		},
	)

	creditDenials = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_denials_total",
			Help: "Consume attempts rejected for insufficient balance.",
		},
	)
)

func init() {
	register(creditsConsumed, creditsGranted, creditDenials)
}

func ObserveCreditConsumed() { creditsConsumed.Inc() }
func ObserveCreditDenied()   { creditDenials.Inc() }

func ObserveCreditsGranted(n int) {
	if n > 0 {
		creditsGranted.Add(float64(n))
	}
}

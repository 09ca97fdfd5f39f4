package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	chatTurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Chat turns handled, by tier and outcome.",
		},
		[]string{"tier", "success"},
	)

	chatTurnLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_turn_latency_ms",
			Help:    "End-to-end chat turn latency in milliseconds.",
			Buckets: []float64{25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"tier"},
	)

	chatPromptTokens = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_prompt_tokens",
			Help:    "Prompt token counts per assembled context.",
			Buckets: []float64{64, 128, 256, 512, 1024, 2048, 4096, 8192},
		},
	)
)

func init() {
	register(chatTurnsTotal, chatTurnLatencyMs, chatPromptTokens)
}

func tierLabel(pro bool) string {
	if pro {
		return "pro"
	}
	return "free"
}

// ObserveChatTurn records one handled turn.
func ObserveChatTurn(pro bool, success bool, elapsed time.Duration) {
	chatTurnsTotal.WithLabelValues(tierLabel(pro), strconv.FormatBool(success)).Inc()
	chatTurnLatencyMs.WithLabelValues(tierLabel(pro)).Observe(float64(elapsed.Milliseconds()))
}

// ObservePromptTokens records the token size of an assembled context.
func ObservePromptTokens(n int) {
	if n > 0 {
		chatPromptTokens.Observe(float64(n))
	}
}

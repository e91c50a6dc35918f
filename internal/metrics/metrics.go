package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// #region collectors

var (
	// turnsTotal counts finished turns by family and outcome
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipher_nback_turns_total",
		Help: "Finished turns by family and outcome",
	}, []string{"family", "outcome"})

	// blockSwitchesTotal counts blocks opened per family
	blockSwitchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipher_nback_block_switches_total",
		Help: "Blocks opened by the scheduler per family",
	}, []string{"family"})

	// repairTransitionsTotal counts repair mode entries and exits
	repairTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipher_nback_repair_transitions_total",
		Help: "Repair mode transitions by kind",
	}, []string{"kind"})

	// searchFallbacksTotal counts constraint searches that fell back
	searchFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cipher_nback_search_fallbacks_total",
		Help: "Generator searches that exhausted their bound",
	}, []string{"family"})

	// reactionSeconds tracks time from stimulus to answer
	reactionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cipher_nback_reaction_seconds",
		Help:    "Time from stimulus to answer in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to 32s
	})
)

// Turn outcomes.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeTimeout   = "timeout"
	OutcomeWarmup    = "warmup"
)

// #endregion collectors

// #region recording

// RecordTurn counts a finished turn under its family and one of the Outcome values.
func RecordTurn(family, outcome string) {
	turnsTotal.WithLabelValues(family, outcome).Inc()
}

// RecordBlockSwitch counts a block opened for family.
func RecordBlockSwitch(family string) {
	blockSwitchesTotal.WithLabelValues(family).Inc()
}

// RecordRepairTransition counts a repair mode entry or exit; kind is "enter" or "exit".
func RecordRepairTransition(kind string) {
	repairTransitionsTotal.WithLabelValues(kind).Inc()
}

// RecordSearchFallback counts a generator search that exhausted its bound.
func RecordSearchFallback(family string) {
	searchFallbacksTotal.WithLabelValues(family).Inc()
}

// ObserveReaction records the time from showing a stimulus to the answer.
func ObserveReaction(d time.Duration) {
	reactionSeconds.Observe(d.Seconds())
}

// Handler serves every collector above, in the Prometheus text format, from the
// default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// #endregion recording

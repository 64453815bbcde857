// Package metrics instruments a report run with Prometheus collectors. The
// process is one-shot, so the collectors exist for push/export integration
// and for tests; nothing here serves an endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sw23/sv-tests/types"
)

const MetricsNamespace = "svtests"

var (
	logsScanned = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "logs_scanned_total",
		Help:      "Count of log files enumerated per runner",
	}, []string{
		"runner",
	})

	logsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "logs_parsed_total",
		Help:      "Count of log files successfully parsed per runner",
	}, []string{
		"runner",
	})

	parseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "parse_errors_total",
		Help:      "Count of malformed or unreadable log files per runner",
	}, []string{
		"runner",
	})

	testsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "tests_total",
		Help:      "Total tests per group and tool",
	}, []string{
		"group",
		"tool",
	})

	testsPassed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "tests_passed",
		Help:      "Passed tests per group and tool",
	}, []string{
		"group",
		"tool",
	})

	passedThroughput = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "passed_throughput_kib_per_second",
		Help:      "Passed-test input bytes processed per second",
	}, []string{
		"group",
		"tool",
	})

	runDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the whole report run",
	})
)

// RecordRunnerIngested records the per-runner ingestion counters.
func RecordRunnerIngested(runner string, scanned, parsed int) {
	logsScanned.WithLabelValues(runner).Add(float64(scanned))
	logsParsed.WithLabelValues(runner).Add(float64(parsed))
}

// RecordParseError counts one skipped log file.
func RecordParseError(runner string) {
	parseErrors.WithLabelValues(runner).Inc()
}

// RecordGroupSummary publishes the merged per-group per-tool figures.
func RecordGroupSummary(group, tool string, summary *types.ToolSummary) {
	testsTotal.WithLabelValues(group, tool).Set(float64(summary.TotalTests))
	testsPassed.WithLabelValues(group, tool).Set(float64(summary.TotalPassedTests))
	passedThroughput.WithLabelValues(group, tool).Set(summary.PassedThroughput)
}

// RecordRunDuration publishes the total run wall time.
func RecordRunDuration(d time.Duration) {
	runDuration.Set(d.Seconds())
}

package main

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"segsort/segsort"
)

// benchMetrics 한 번의 벤치마크 실행 동안 모으는 prometheus 지표.
// 전역 레지스트리를 쓰지 않으므로 테스트마다 새로 만들 수 있다.
type benchMetrics struct {
	registry *prometheus.Registry

	sortDuration *prometheus.HistogramVec
	allocBytes   *prometheus.HistogramVec
	stackDepth   *prometheus.GaugeVec
	mergeDepth   *prometheus.GaugeVec
	failures     *prometheus.CounterVec
}

func newBenchMetrics() *benchMetrics {
	m := &benchMetrics{
		registry: prometheus.NewRegistry(),
		sortDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "segsort",
				Subsystem: "bench",
				Name:      "sort_duration_seconds",
				Help:      "Bucketed histogram of single sort call duration.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 2.0, 20),
			}, []string{"algorithm", "distribution"}),
		allocBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "segsort",
				Subsystem: "bench",
				Name:      "alloc_bytes",
				Help:      "Bucketed histogram of bytes allocated during a sort call.",
				Buckets:   prometheus.ExponentialBuckets(64, 4.0, 14),
			}, []string{"algorithm", "distribution"}),
		stackDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "segsort",
				Subsystem: "bench",
				Name:      "max_stack_depth",
				Help:      "Deepest pending-run stack observed by the in-place segment sort.",
			}, []string{"distribution", "size"}),
		mergeDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "segsort",
				Subsystem: "bench",
				Name:      "max_merge_depth",
				Help:      "Deepest symmetric-merge recursion observed by the in-place segment sort.",
			}, []string{"distribution", "size"}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "segsort",
				Subsystem: "bench",
				Name:      "verify_failures_total",
				Help:      "Sort results that were not an ordered permutation of the input.",
			}, []string{"algorithm", "distribution"}),
	}
	m.registry.MustRegister(m.sortDuration, m.allocBytes, m.stackDepth, m.mergeDepth, m.failures)
	return m
}

func (m *benchMetrics) observeRun(algo, dist string, d time.Duration, alloc uint64) {
	m.sortDuration.WithLabelValues(algo, dist).Observe(d.Seconds())
	m.allocBytes.WithLabelValues(algo, dist).Observe(float64(alloc))
}

func (m *benchMetrics) observeSegsort(dist, size string, st segsort.Stats) {
	m.stackDepth.WithLabelValues(dist, size).Set(float64(st.MaxStackDepth))
	m.mergeDepth.WithLabelValues(dist, size).Set(float64(st.MaxMergeDepth))
}

func (m *benchMetrics) observeFailure(algo, dist string) {
	m.failures.WithLabelValues(algo, dist).Inc()
}

// writeTextfile node_exporter textfile 형식으로 저장
func (m *benchMetrics) writeTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, m.registry), "write metrics %s", path)
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agdeps_stage_seconds",
		Help:    "Time spent in each analysis stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	ParsedFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agdeps_parsed_files_total",
		Help: "Total number of source files parsed, by flavor.",
	}, []string{"flavor"})

	GraphModules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agdeps_graph_modules_total",
		Help: "Number of modules in the dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agdeps_graph_edges_total",
		Help: "Number of internal import edges in the dependency graph.",
	})

	ExternalRefs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agdeps_external_refs_total",
		Help: "Number of import references that resolve outside the analyzed tree.",
	})

	CycleCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agdeps_cycles_total",
		Help: "Number of dependency cycles found by the last run.",
	})

	MaxDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agdeps_max_depth",
		Help: "Maximum dependency chain depth found by the last run.",
	})

	WarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "agdeps_warnings_total",
		Help: "Total number of analysis warnings.",
	})

	HeapAllocMB = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "agdeps_heap_alloc_mb",
		Help: "Heap allocation in MB sampled at the end of the run.",
	})
)

// WriteTextfile dumps every registered metric in the Prometheus text
// exposition format, suitable for the node_exporter textfile
// collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	// Total counters
	appliedCounter     prometheus.Counter
	skippedCounter     prometheus.Counter
	rejectedCounter    *prometheus.CounterVec
	retriesCounter     prometheus.Counter
	outOfOrderCounter  prometheus.Counter
	commitErrorCounter prometheus.Counter

	// Gauges
	checkpointBlock prometheus.Gauge
	queueLength     prometheus.Gauge

	// Histograms
	applyDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		appliedCounter: f.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_indexer_events_applied",
			Help: "The total number of applied events",
		}),
		skippedCounter: f.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_indexer_events_skipped",
			Help: "The total number of events at or before the checkpoint",
		}),
		rejectedCounter: f.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpad_indexer_data_quality_errors",
			Help: "The total number of events rejected by a data-quality check",
		}, []string{"category"}),
		retriesCounter: f.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_indexer_persistence_retries",
			Help: "The total number of retried persistence failures",
		}),
		outOfOrderCounter: f.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_indexer_events_out_of_order",
			Help: "The total number of events delivered behind the last seen position",
		}),
		commitErrorCounter: f.NewCounter(prometheus.CounterOpts{
			Name: "launchpad_indexer_source_commit_errors",
			Help: "The total number of failed source acknowledgements",
		}),
		checkpointBlock: f.NewGauge(prometheus.GaugeOpts{
			Name: "launchpad_indexer_checkpoint_block",
			Help: "The block number of the last committed event",
		}),
		queueLength: f.NewGauge(prometheus.GaugeOpts{
			Name: "launchpad_indexer_queue_length",
			Help: "The number of fetched events waiting to be applied",
		}),
		applyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchpad_indexer_apply_seconds",
			Help:    "Time spent applying a single event including retries",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		}),
	}
}

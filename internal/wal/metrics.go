package wal

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AppendTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_log_append_total",
			Help: "Total number of records appended to the log.",
		},
	)

	AppendBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_log_append_bytes_total",
			Help: "Total number of record bytes appended to the log, excluding the length prefix.",
		},
	)

	FlushTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_log_flush_total",
			Help: "Total number of flushes of the tail block.",
		},
	)

	FlushSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_log_flush_skipped_total",
			Help: "Total number of flushes by sequence number which were skipped as already saved.",
		},
	)

	NewBlockTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_log_new_block_total",
			Help: "Total number of blocks allocated for the log.",
		},
	)

	FlushDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kernel_log_flush_duration_seconds",
			Help:    "Duration of flushes in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		AppendTotal,
		AppendBytesTotal,
		FlushTotal,
		FlushSkippedTotal,
		NewBlockTotal,
		FlushDuration,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

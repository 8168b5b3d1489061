package file

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BlocksReadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_file_blocks_read_total",
			Help: "Total number of blocks read.",
		},
	)

	BlocksWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_file_blocks_written_total",
			Help: "Total number of blocks written.",
		},
	)

	BlocksAppendedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_file_blocks_appended_total",
			Help: "Total number of blocks appended to files.",
		},
	)

	BytesReadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_file_bytes_read_total",
			Help: "Total number of bytes read from block files.",
		},
	)

	BytesWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kernel_file_bytes_written_total",
			Help: "Total number of bytes written to block files.",
		},
	)

	OpenFiles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kernel_file_open_files",
			Help: "Number of files currently held open by file managers.",
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		BlocksReadTotal,
		BlocksWrittenTotal,
		BlocksAppendedTotal,
		BytesReadTotal,
		BytesWrittenTotal,
		OpenFiles,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

package wal

import (
	"github.com/prometheus/client_golang/prometheus"

	intfile "github.com/backbone81/storage-kernel/internal/file"
	intwal "github.com/backbone81/storage-kernel/internal/wal"
)

// RegisterMetrics registers all metrics collectors of the file manager and the write-ahead log with the given
// prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	if err := intwal.RegisterMetrics(registerer); err != nil {
		return err
	}
	if err := intfile.RegisterMetrics(registerer); err != nil {
		return err
	}
	return nil
}

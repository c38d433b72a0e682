package chunkstream

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/streamkit/pkg/metrics"
	"github.com/vnykmshr/streamkit/pkg/stream"
)

// MetricsWriter wraps a chunking Writer with Prometheus metrics collection.
type MetricsWriter struct {
	writer   *Writer
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a chunking Writer with metrics enabled.
func NewWithMetrics(base stream.Writer, chunkSize int, name string) *MetricsWriter {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	cfg := DefaultConfig()
	cfg.ChunkSize = chunkSize
	return NewWithConfigAndMetrics(base, cfg, name, config)
}

// NewWithConfigAndMetrics creates a chunking Writer with custom config and metrics.
func NewWithConfigAndMetrics(base stream.Writer, config Config, name string, metricsConfig metrics.Config) *MetricsWriter {
	writer := NewWithConfig(base, config)

	mw := &MetricsWriter{
		writer: writer,
		name:   name,
	}

	if !metricsConfig.Enabled {
		return mw
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}
	mw.registry = registry
	mw.enabled = true

	// observe every emission on its way downstream
	emit := writer.emit
	writer.emit = func(p []byte, final bool) error {
		registry.ChunkFlushes.WithLabelValues(name, strconv.FormatBool(final)).Inc()
		registry.ChunkBytes.WithLabelValues(name).Add(float64(len(p)))
		return emit(p, final)
	}

	return mw
}

// Write buffers p through the wrapped Writer, recording operation and
// byte counts.
func (mw *MetricsWriter) Write(p []byte) error {
	if mw.enabled {
		mw.registry.StreamWrites.WithLabelValues("chunk", mw.name).Inc()
		mw.registry.StreamBytesOut.WithLabelValues("chunk", mw.name).Add(float64(len(p)))
	}

	err := mw.writer.Write(p)

	if mw.enabled {
		if err != nil {
			mw.registry.StreamErrors.WithLabelValues("chunk", mw.name).Inc()
		}
		mw.registry.ChunkBufferFill.WithLabelValues(mw.name).Set(float64(mw.writer.Buffered()))
	}
	return err
}

// Close finalizes the wrapped Writer.
func (mw *MetricsWriter) Close() error {
	err := mw.writer.Close()
	if mw.enabled {
		if err != nil {
			mw.registry.StreamErrors.WithLabelValues("chunk", mw.name).Inc()
		}
		mw.registry.ChunkBufferFill.WithLabelValues(mw.name).Set(0)
	}
	return err
}

// Buffered returns the bytes currently held by the wrapped Writer.
func (mw *MetricsWriter) Buffered() int {
	return mw.writer.Buffered()
}

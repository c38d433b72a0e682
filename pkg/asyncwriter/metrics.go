package asyncwriter

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/streamkit/pkg/metrics"
	"github.com/vnykmshr/streamkit/pkg/stream"
)

// MetricsWriter wraps an AsyncWriter with Prometheus metrics collection.
type MetricsWriter struct {
	writer   AsyncWriter
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates an AsyncWriter with metrics enabled.
func NewWithMetrics(w stream.Writer, name string) AsyncWriter {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	mw, _ := NewWithConfigAndMetrics(w, DefaultConfig(), name, config)
	return mw
}

// NewWithConfigAndMetrics creates an AsyncWriter with custom config and metrics.
func NewWithConfigAndMetrics(w stream.Writer, config Config, name string, metricsConfig metrics.Config) (AsyncWriter, error) {
	if !metricsConfig.Enabled {
		return NewWithConfig(w, config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	// observe flushes and backpressure through the existing callbacks
	userOnFlush := config.OnFlush
	config.OnFlush = func(bytesWritten int, duration time.Duration) {
		registry.WriterFlushes.WithLabelValues(name).Inc()
		registry.WriterBytesWritten.WithLabelValues(name).Add(float64(bytesWritten))
		if userOnFlush != nil {
			userOnFlush(bytesWritten, duration)
		}
	}
	userOnBufferFull := config.OnBufferFull
	config.OnBufferFull = func() {
		registry.BackpressureEvents.WithLabelValues(name).Inc()
		if userOnBufferFull != nil {
			userOnBufferFull()
		}
	}

	base, err := NewWithConfig(w, config)
	if err != nil {
		return nil, err
	}

	return &MetricsWriter{
		writer:   base,
		name:     name,
		registry: registry,
		enabled:  true,
	}, nil
}

// Write records the operation and delegates.
func (mw *MetricsWriter) Write(data []byte) error {
	return mw.WriteContext(context.Background(), data)
}

// WriteContext records the operation and delegates.
func (mw *MetricsWriter) WriteContext(ctx context.Context, data []byte) error {
	if mw.enabled {
		mw.registry.StreamWrites.WithLabelValues("async", mw.name).Inc()
		mw.registry.StreamBytesOut.WithLabelValues("async", mw.name).Add(float64(len(data)))
	}

	err := mw.writer.WriteContext(ctx, data)

	if mw.enabled {
		if err != nil {
			mw.registry.StreamErrors.WithLabelValues("async", mw.name).Inc()
		}
		mw.registry.WriterBufferSize.WithLabelValues(mw.name).Set(float64(mw.writer.BufferSize()))
	}
	return err
}

// Flush delegates, updating the buffer gauge afterward.
func (mw *MetricsWriter) Flush(ctx context.Context) error {
	err := mw.writer.Flush(ctx)
	if mw.enabled {
		mw.registry.WriterBufferSize.WithLabelValues(mw.name).Set(float64(mw.writer.BufferSize()))
	}
	return err
}

// Close delegates.
func (mw *MetricsWriter) Close() error {
	return mw.writer.Close()
}

// Stats delegates.
func (mw *MetricsWriter) Stats() Stats {
	return mw.writer.Stats()
}

// IsClosed delegates.
func (mw *MetricsWriter) IsClosed() bool {
	return mw.writer.IsClosed()
}

// BufferSize delegates.
func (mw *MetricsWriter) BufferSize() int {
	return mw.writer.BufferSize()
}

// BufferCapacity delegates.
func (mw *MetricsWriter) BufferCapacity() int {
	return mw.writer.BufferCapacity()
}

// Package metrics provides Prometheus instrumentation for streamkit components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for streamkit components.
type Registry struct {
	// Stream Metrics
	StreamWrites   *prometheus.CounterVec
	StreamReads    *prometheus.CounterVec
	StreamBytesIn  *prometheus.CounterVec
	StreamBytesOut *prometheus.CounterVec
	StreamErrors   *prometheus.CounterVec

	// Chunking Metrics
	ChunkFlushes    *prometheus.CounterVec
	ChunkBytes      *prometheus.CounterVec
	ChunkBufferFill *prometheus.GaugeVec

	// Async Writer Metrics
	WriterFlushes      *prometheus.CounterVec
	WriterBytesWritten *prometheus.CounterVec
	WriterBufferSize   *prometheus.GaugeVec
	BackpressureEvents *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by streamkit components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Stream Metrics
		StreamWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "stream",
				Name:      "writes_total",
				Help:      "Total number of stream write operations",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "stream",
				Name:      "reads_total",
				Help:      "Total number of stream read operations",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamBytesIn: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "stream",
				Name:      "bytes_read_total",
				Help:      "Total number of bytes read from streams",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamBytesOut: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "stream",
				Name:      "bytes_written_total",
				Help:      "Total number of bytes written to streams",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "stream",
				Name:      "errors_total",
				Help:      "Total number of stream I/O errors",
			},
			[]string{"stream_type", "stream_name"},
		),

		// Chunking Metrics
		ChunkFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "chunk",
				Name:      "flushes_total",
				Help:      "Total number of chunks emitted downstream",
			},
			[]string{"stream_name", "final"},
		),

		ChunkBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "chunk",
				Name:      "bytes_total",
				Help:      "Total number of bytes emitted in chunks",
			},
			[]string{"stream_name"},
		),

		ChunkBufferFill: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamkit",
				Subsystem: "chunk",
				Name:      "buffer_fill_bytes",
				Help:      "Bytes currently buffered awaiting a full chunk",
			},
			[]string{"stream_name"},
		),

		// Async Writer Metrics
		WriterFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "writer",
				Name:      "flushes_total",
				Help:      "Total number of async writer flush operations",
			},
			[]string{"writer_name"},
		),

		WriterBytesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "writer",
				Name:      "bytes_written_total",
				Help:      "Total number of bytes flushed by async writers",
			},
			[]string{"writer_name"},
		),

		WriterBufferSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamkit",
				Subsystem: "writer",
				Name:      "buffer_bytes",
				Help:      "Bytes currently buffered by async writers",
			},
			[]string{"writer_name"},
		),

		BackpressureEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamkit",
				Subsystem: "writer",
				Name:      "backpressure_events_total",
				Help:      "Times an async writer buffer was full",
			},
			[]string{"writer_name"},
		),
	}
}

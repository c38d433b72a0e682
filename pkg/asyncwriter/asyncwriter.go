package asyncwriter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/streamkit/pkg/stream"
)

// ErrWriterClosed is returned when attempting to write to a closed writer.
var ErrWriterClosed = errors.New("asyncwriter: writer is closed")

// ErrBufferFull is returned when the internal buffer is full and cannot accept more data.
var ErrBufferFull = errors.New("asyncwriter: buffer is full")

// AsyncWriter provides asynchronous, buffered writing over a stream.
// It accumulates writes in memory and flushes them to the underlying
// stream in a background goroutine. Unlike the synchronous decorators,
// AsyncWriter is safe for concurrent use: it exists to serialize many
// producers in front of one single-owner stream.
type AsyncWriter interface {
	// Write writes data asynchronously. Returns without blocking on
	// the underlying stream.
	Write(data []byte) error

	// WriteContext writes data with context support for cancellation.
	WriteContext(ctx context.Context, data []byte) error

	// Flush forces all buffered data down to the underlying stream.
	// It blocks until the flush completes or ctx is canceled.
	Flush(ctx context.Context) error

	// Close shuts the writer down, flushing any remaining data. After
	// Close returns no more writes are accepted.
	Close() error

	// Stats returns statistics about the writer's activity.
	Stats() Stats

	// IsClosed returns true if the writer is closed.
	IsClosed() bool

	// BufferSize returns the current number of buffered bytes.
	BufferSize() int

	// BufferCapacity returns the maximum buffer capacity.
	BufferCapacity() int
}

// Stats holds statistics about async writer activity.
type Stats struct {
	// BytesBuffered is the total number of bytes accepted by Write.
	BytesBuffered int64

	// BytesFlushed is the total number of bytes delivered downstream.
	BytesFlushed int64

	// WriteCount is the total number of write operations.
	WriteCount int64

	// FlushCount is the total number of flush operations.
	FlushCount int64

	// ErrorCount is the total number of errors encountered.
	ErrorCount int64

	// BufferOverflows is the number of times the buffer was full.
	BufferOverflows int64

	// LastFlushTime is the timestamp of the last flush.
	LastFlushTime time.Time

	// BufferUtilization is the current buffer utilization (0.0 to 1.0).
	BufferUtilization float64
}

// Config holds configuration options for AsyncWriter.
type Config struct {
	// BufferSize is the size of the internal buffer in bytes.
	// Default: 64KB
	BufferSize int

	// FlushInterval is how often to flush the buffer automatically.
	// Set to 0 to disable interval flushing.
	// Default: 1 second
	FlushInterval time.Duration

	// FlushSchedule is a cron expression for scheduled flushing, for
	// workloads that want flushes aligned to wall-clock boundaries
	// (log rotation, periodic checkpoints) rather than a rolling
	// interval. Empty disables scheduled flushing.
	FlushSchedule string

	// BlockOnFull determines behavior when the buffer is full.
	// If true, Write blocks until space is available.
	// If false, Write returns ErrBufferFull immediately.
	// Default: true
	BlockOnFull bool

	// MaxRetries is the number of times to retry failed flushes.
	// Default: 3
	MaxRetries int

	// RetryDelay is the delay between retries.
	// Default: 100ms
	RetryDelay time.Duration

	// OnError is called when flush errors occur.
	OnError func(error)

	// OnFlush is called after each flush operation.
	OnFlush func(bytesWritten int, duration time.Duration)

	// OnBufferFull is called when the buffer becomes full.
	OnBufferFull func()
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize:    64 * 1024, // 64KB
		FlushInterval: time.Second,
		BlockOnFull:   true,
		MaxRetries:    3,
		RetryDelay:    100 * time.Millisecond,
	}
}

// writeRequest represents a write operation request.
type writeRequest struct {
	data []byte
	ctx  context.Context
	done chan error
}

// asyncWriter implements AsyncWriter.
type asyncWriter struct {
	underlying stream.Writer
	config     Config

	buffer   []byte
	bufferMu sync.RWMutex

	writeCh chan writeRequest
	flushCh chan chan error
	closeCh chan chan error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	sched  *cron.Cron

	closed int32 // atomic

	stats   Stats
	statsMu sync.RWMutex
}

// New creates a new AsyncWriter over w with default configuration.
func New(w stream.Writer) AsyncWriter {
	aw, _ := NewWithConfig(w, DefaultConfig())
	return aw
}

// NewWithConfig creates a new AsyncWriter with the specified
// configuration. It fails only when FlushSchedule is not a valid cron
// expression.
func NewWithConfig(w stream.Writer, config Config) (AsyncWriter, error) {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = DefaultConfig().MaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultConfig().RetryDelay
	}

	ctx, cancel := context.WithCancel(context.Background())

	aw := &asyncWriter{
		underlying: w,
		config:     config,
		buffer:     make([]byte, 0, config.BufferSize),
		writeCh:    make(chan writeRequest, 100),
		flushCh:    make(chan chan error, 10),
		closeCh:    make(chan chan error, 1),
		ctx:        ctx,
		cancel:     cancel,
	}

	if config.FlushSchedule != "" {
		aw.sched = cron.New()
		if _, err := aw.sched.AddFunc(config.FlushSchedule, func() {
			_ = aw.flushBuffer()
		}); err != nil {
			cancel()
			return nil, fmt.Errorf("asyncwriter: flush schedule: %w", err)
		}
		aw.sched.Start()
	}

	aw.wg.Add(1)
	go aw.writerLoop()

	if config.FlushInterval > 0 {
		aw.wg.Add(1)
		go aw.flushLoop()
	}

	return aw, nil
}

// Write implements AsyncWriter.Write.
func (aw *asyncWriter) Write(data []byte) error {
	return aw.WriteContext(context.Background(), data)
}

// WriteContext implements AsyncWriter.WriteContext.
func (aw *asyncWriter) WriteContext(ctx context.Context, data []byte) error {
	if aw.IsClosed() {
		return ErrWriterClosed
	}

	if len(data) == 0 {
		return nil
	}

	aw.bufferMu.RLock()
	wouldOverflow := len(aw.buffer)+len(data) > cap(aw.buffer)
	aw.bufferMu.RUnlock()

	if wouldOverflow && !aw.config.BlockOnFull {
		aw.updateStats(func(s *Stats) {
			s.BufferOverflows++
		})
		if aw.config.OnBufferFull != nil {
			aw.config.OnBufferFull()
		}
		return ErrBufferFull
	}

	req := writeRequest{
		data: make([]byte, len(data)),
		ctx:  ctx,
		done: make(chan error, 1),
	}
	copy(req.data, data)

	select {
	case aw.writeCh <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-aw.ctx.Done():
		return ErrWriterClosed
	}

	if aw.config.BlockOnFull {
		select {
		case err := <-req.done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case <-aw.ctx.Done():
			return ErrWriterClosed
		}
	}

	return nil
}

// Flush implements AsyncWriter.Flush.
func (aw *asyncWriter) Flush(ctx context.Context) error {
	if aw.IsClosed() {
		return ErrWriterClosed
	}

	done := make(chan error, 1)

	select {
	case aw.flushCh <- done:
	case <-ctx.Done():
		return ctx.Err()
	case <-aw.ctx.Done():
		return ErrWriterClosed
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-aw.ctx.Done():
		return ErrWriterClosed
	}
}

// Close implements AsyncWriter.Close.
func (aw *asyncWriter) Close() error {
	if !atomic.CompareAndSwapInt32(&aw.closed, 0, 1) {
		return nil // Already closed
	}

	if aw.sched != nil {
		aw.sched.Stop()
	}

	done := make(chan error, 1)

	select {
	case aw.closeCh <- done:
	default:
		aw.cancel()
		aw.wg.Wait()
		return nil
	}

	err := <-done
	aw.wg.Wait()

	return err
}

// Stats implements AsyncWriter.Stats.
func (aw *asyncWriter) Stats() Stats {
	aw.statsMu.RLock()
	stats := aw.stats
	aw.statsMu.RUnlock()

	aw.bufferMu.RLock()
	if cap(aw.buffer) > 0 {
		stats.BufferUtilization = float64(len(aw.buffer)) / float64(cap(aw.buffer))
	}
	aw.bufferMu.RUnlock()

	return stats
}

// IsClosed implements AsyncWriter.IsClosed.
func (aw *asyncWriter) IsClosed() bool {
	return atomic.LoadInt32(&aw.closed) != 0
}

// BufferSize implements AsyncWriter.BufferSize.
func (aw *asyncWriter) BufferSize() int {
	aw.bufferMu.RLock()
	defer aw.bufferMu.RUnlock()
	return len(aw.buffer)
}

// BufferCapacity implements AsyncWriter.BufferCapacity.
func (aw *asyncWriter) BufferCapacity() int {
	aw.bufferMu.RLock()
	defer aw.bufferMu.RUnlock()
	return cap(aw.buffer)
}

// writerLoop is the background goroutine that handles write, flush and
// close requests.
func (aw *asyncWriter) writerLoop() {
	defer aw.wg.Done()

	for {
		select {
		case req := <-aw.writeCh:
			err := aw.handleWriteRequest(req)
			if req.done != nil {
				select {
				case req.done <- err:
				case <-req.ctx.Done():
				case <-aw.ctx.Done():
				}
			}

		case done := <-aw.flushCh:
			err := aw.flushBuffer()
			select {
			case done <- err:
			default:
			}

		case done := <-aw.closeCh:
			err := aw.flushBuffer()
			aw.cancel()
			select {
			case done <- err:
			default:
			}
			return

		case <-aw.ctx.Done():
			return
		}
	}
}

// flushLoop flushes the buffer at regular intervals.
func (aw *asyncWriter) flushLoop() {
	defer aw.wg.Done()

	ticker := time.NewTicker(aw.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = aw.flushBuffer() // Ignore error in automatic flush
		case <-aw.ctx.Done():
			return
		}
	}
}

// handleWriteRequest buffers one write, flushing first when it would
// not fit.
func (aw *asyncWriter) handleWriteRequest(req writeRequest) error {
	aw.bufferMu.Lock()
	if len(aw.buffer)+len(req.data) > cap(aw.buffer) {
		aw.bufferMu.Unlock()
		if err := aw.flushBuffer(); err != nil {
			aw.updateStats(func(s *Stats) {
				s.ErrorCount++
			})
			if aw.config.OnError != nil {
				aw.config.OnError(err)
			}
			return err
		}
		aw.bufferMu.Lock()
	}

	aw.buffer = append(aw.buffer, req.data...)
	aw.bufferMu.Unlock()

	aw.updateStats(func(s *Stats) {
		s.WriteCount++
		s.BytesBuffered += int64(len(req.data))
	})

	return nil
}

// flushBuffer delivers all buffered data to the underlying stream.
func (aw *asyncWriter) flushBuffer() error {
	aw.bufferMu.Lock()
	if len(aw.buffer) == 0 {
		aw.bufferMu.Unlock()
		return nil
	}

	// Copy out so the lock is not held during stream I/O
	data := make([]byte, len(aw.buffer))
	copy(data, aw.buffer)
	aw.buffer = aw.buffer[:0]
	aw.bufferMu.Unlock()

	startTime := time.Now()
	err := aw.writeWithRetries(data)
	duration := time.Since(startTime)

	aw.updateStats(func(s *Stats) {
		s.FlushCount++
		s.LastFlushTime = time.Now()
		if err != nil {
			s.ErrorCount++
		} else {
			s.BytesFlushed += int64(len(data))
		}
	})

	if aw.config.OnFlush != nil {
		aw.config.OnFlush(len(data), duration)
	}

	if err != nil && aw.config.OnError != nil {
		aw.config.OnError(err)
	}

	return err
}

// writeWithRetries pushes data downstream, retrying failed writes. The
// underlying contract is all-or-error, so a retry resends the whole
// payload; the stream never saw any of it on failure.
func (aw *asyncWriter) writeWithRetries(data []byte) error {
	var lastErr error

	for attempt := 0; attempt <= aw.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(aw.config.RetryDelay):
			case <-aw.ctx.Done():
				return aw.ctx.Err()
			}
		}

		if err := aw.underlying.Write(data); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return lastErr
}

// updateStats safely updates statistics.
func (aw *asyncWriter) updateStats(updater func(*Stats)) {
	aw.statsMu.Lock()
	defer aw.statsMu.Unlock()
	updater(&aw.stats)
}

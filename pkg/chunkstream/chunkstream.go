package chunkstream

import (
	"errors"

	"github.com/vnykmshr/streamkit/pkg/stream"
)

// ErrFinalized is returned when writing to or closing a Writer whose
// finalize step has already run.
var ErrFinalized = errors.New("chunkstream: writer already finalized")

// ErrFailed is returned for every operation after a chunk emission has
// failed. A failed writer holds no recoverable state; the buffered
// bytes are gone.
var ErrFailed = errors.New("chunkstream: writer failed, no further writes accepted")

// EmitFunc receives filled chunks from a Writer. Every call except the
// last carries exactly the configured chunk size (or a whole multiple
// of it, when the buffer batches several chunks); the last call carries
// final=true and the remaining tail, which may be shorter or empty.
//
// Custom emit functions implement block transforms: padding the final
// chunk, appending a trailer, encrypting fixed-size records. The
// default emit forwards the bytes to the wrapped stream unmodified.
type EmitFunc func(p []byte, final bool) error

// Config holds configuration options for a chunking Writer.
type Config struct {
	// ChunkSize is the size of the blocks emitted downstream.
	// Default: 4096.
	ChunkSize int

	// BufferSize is the internal buffer capacity. It is rounded to a
	// whole multiple of ChunkSize; capacities above one chunk batch
	// several chunks into a single emit call.
	// Default: ChunkSize.
	BufferSize int

	// Emit overrides the default forward-to-base emission.
	Emit EmitFunc
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 4096,
	}
}

// Writer accumulates incoming bytes and hands them downstream only in
// fixed-size blocks, plus one final possibly-shorter tail at Close.
//
// Close runs the finalize step and must be called exactly once, before
// the wrapped stream is released. Closing twice is reported as
// ErrFinalized; skipping Close loses the buffered tail silently.
type Writer struct {
	Filter
	chunkSize int
	emit      EmitFunc

	buf       []byte
	off       int
	finalized bool
	failed    bool
}

// New creates a chunking Writer over base emitting chunkSize-byte
// blocks.
func New(base stream.Writer, chunkSize int) *Writer {
	cfg := DefaultConfig()
	cfg.ChunkSize = chunkSize
	return NewWithConfig(base, cfg)
}

// NewWithConfig creates a chunking Writer over base with the given
// configuration. base may be nil only when config.Emit is set.
func NewWithConfig(base stream.Writer, config Config) *Writer {
	if config.ChunkSize < 1 {
		config.ChunkSize = DefaultConfig().ChunkSize
	}
	if config.BufferSize < config.ChunkSize {
		config.BufferSize = config.ChunkSize
	}
	// whole chunks only, so every non-final emit is a multiple of one chunk
	config.BufferSize -= config.BufferSize % config.ChunkSize

	w := &Writer{
		Filter:    Filter{base: base},
		chunkSize: config.ChunkSize,
		emit:      config.Emit,
		buf:       make([]byte, config.BufferSize),
	}
	if w.emit == nil {
		w.emit = w.forwardChunk
	}
	return w
}

// Write buffers p, emitting full buffers downstream as they fill. An
// emit failure fails the whole call and poisons the writer.
func (w *Writer) Write(p []byte) error {
	if w.finalized {
		return ErrFinalized
	}
	if w.failed {
		return ErrFailed
	}
	for len(p) > 0 {
		n := copy(w.buf[w.off:], p)
		w.off += n
		p = p[n:]
		if w.off == len(w.buf) {
			if err := w.emit(w.buf, false); err != nil {
				w.failed = true
				return err
			}
			w.off = 0
		}
	}
	return nil
}

// Close runs the finalize step: the buffered tail is handed to the emit
// function with final=true. The tail may be empty; transform-style emit
// functions still get their final call. Close must run before the
// wrapped stream is released, and runs at most once.
func (w *Writer) Close() error {
	if w.finalized {
		return ErrFinalized
	}
	w.finalized = true
	if w.failed {
		return ErrFailed
	}
	err := w.emit(w.buf[:w.off], true)
	w.off = 0
	if err != nil {
		w.failed = true
	}
	return err
}

// Buffered returns the number of bytes held back awaiting a full chunk.
func (w *Writer) Buffered() int {
	return w.off
}

// ChunkSize returns the configured chunk size.
func (w *Writer) ChunkSize() int {
	return w.chunkSize
}

// forwardChunk is the default emission: pass the span to the wrapped
// stream unmodified, ignoring the final distinction.
func (w *Writer) forwardChunk(p []byte, _ bool) error {
	if len(p) == 0 {
		return nil
	}
	return w.Filter.Write(p)
}

package testutil

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// MockWriter is a test sink implementing the all-or-error write contract.
// It records everything written and can be told to fail on the nth call.
type MockWriter struct {
	buf        bytes.Buffer
	mu         sync.Mutex
	writeCount int
	errorOnNth int
	err        error
}

// NewMockWriter creates a new MockWriter.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write records p, or fails if a simulated error is due.
func (mw *MockWriter) Write(p []byte) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	mw.writeCount++

	if mw.err != nil {
		return mw.err
	}
	if mw.errorOnNth > 0 && mw.writeCount >= mw.errorOnNth {
		return errors.New("simulated write error")
	}

	mw.buf.Write(p)
	return nil
}

// Bytes returns a copy of everything written so far.
func (mw *MockWriter) Bytes() []byte {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return append([]byte(nil), mw.buf.Bytes()...)
}

// String returns the current buffer contents.
func (mw *MockWriter) String() string {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.buf.String()
}

// Len returns the current buffer length.
func (mw *MockWriter) Len() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.buf.Len()
}

// WriteCount returns the number of Write calls.
func (mw *MockWriter) WriteCount() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return mw.writeCount
}

// SetErrorOnNth configures the writer to fail from the nth write onward.
func (mw *MockWriter) SetErrorOnNth(n int) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.errorOnNth = n
}

// SetAlwaysError configures the writer to always return the given error.
func (mw *MockWriter) SetAlwaysError(err error) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.err = err
}

// FragmentReader yields its data in fragments of at most Size bytes per
// Read call, simulating a source that trickles data (a slow socket, a
// pipe). At end of data it reports 0, io.EOF.
type FragmentReader struct {
	data []byte
	pos  int
	size int
}

// NewFragmentReader creates a FragmentReader over data with the given
// maximum fragment size.
func NewFragmentReader(data []byte, size int) *FragmentReader {
	if size < 1 {
		size = 1
	}
	return &FragmentReader{data: data, size: size}
}

// Read returns the next fragment.
func (fr *FragmentReader) Read(p []byte) (int, error) {
	if fr.pos >= len(fr.data) {
		return 0, io.EOF
	}
	n := len(p)
	if n > fr.size {
		n = fr.size
	}
	if rem := len(fr.data) - fr.pos; n > rem {
		n = rem
	}
	copy(p, fr.data[fr.pos:fr.pos+n])
	fr.pos += n
	return n, nil
}

// RecordedChunk is one emitted chunk captured by a ChunkRecorder.
type RecordedChunk struct {
	Data  []byte
	Final bool
}

// ChunkRecorder captures chunk emissions so tests can assert on chunk
// boundaries and the final flag.
type ChunkRecorder struct {
	Chunks []RecordedChunk
}

// Record stores a copy of the chunk. Suitable for use as a chunkstream
// emit function.
func (cr *ChunkRecorder) Record(p []byte, final bool) error {
	cr.Chunks = append(cr.Chunks, RecordedChunk{
		Data:  append([]byte(nil), p...),
		Final: final,
	})
	return nil
}

// Sizes returns the sizes of the recorded chunks in emission order.
func (cr *ChunkRecorder) Sizes() []int {
	sizes := make([]int, len(cr.Chunks))
	for i, c := range cr.Chunks {
		sizes[i] = len(c.Data)
	}
	return sizes
}

// Joined returns the concatenation of all recorded chunks.
func (cr *ChunkRecorder) Joined() []byte {
	var out []byte
	for _, c := range cr.Chunks {
		out = append(out, c.Data...)
	}
	return out
}

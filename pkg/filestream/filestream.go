package filestream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vnykmshr/streamkit/pkg/stream"
)

// ErrNoHandle is returned for I/O on a Stream constructed without an
// underlying handle.
var ErrNoHandle = errors.New("filestream: no underlying handle")

// ErrNotSeekable is returned by Seek when the underlying handle has no
// seek support.
var ErrNotSeekable = errors.New("filestream: handle is not seekable")

// Stream is a stream over a native file handle, which it owns: Close
// releases the handle exactly once, no matter how many times it runs.
//
// A nil handle is a valid zero state; every read and write reports
// ErrNoHandle and Close is a no-op.
type Stream struct {
	rw io.ReadWriteCloser

	closeOnce sync.Once
	closeErr  error
}

var _ stream.Stream = (*Stream)(nil)

// NewFile creates a Stream owning f. Passing nil yields the valid
// zero state.
func NewFile(f *os.File) *Stream {
	if f == nil {
		return &Stream{}
	}
	return &Stream{rw: f}
}

// NewReadWriter creates a Stream owning any read/write/close handle,
// for bridging non-file handles such as network connections.
func NewReadWriter(rw io.ReadWriteCloser) *Stream {
	return &Stream{rw: rw}
}

// Read reads up to len(p) bytes from the handle. End of file is
// reported as 0, io.EOF; a genuine read failure keeps its error
// identity and is never conflated with EOF.
func (s *Stream) Read(p []byte) (int, error) {
	if s.rw == nil {
		return 0, ErrNoHandle
	}
	n, err := s.rw.Read(p)
	if n > 0 {
		// data first; a pending error resurfaces on the next call
		return n, nil
	}
	if err == nil {
		return 0, nil
	}
	if errors.Is(err, io.EOF) {
		return 0, io.EOF
	}
	return 0, fmt.Errorf("filestream: read: %w", err)
}

// Write loops the handle's write until every byte of p is delivered.
// Zero progress with input remaining is a short-write failure.
func (s *Stream) Write(p []byte) error {
	if s.rw == nil {
		return ErrNoHandle
	}
	for len(p) > 0 {
		n, err := s.rw.Write(p)
		if err != nil {
			return fmt.Errorf("filestream: write: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("filestream: write: %w", io.ErrShortWrite)
		}
		p = p[n:]
	}
	return nil
}

// Seek delegates to the handle when it supports seeking.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.rw == nil {
		return 0, ErrNoHandle
	}
	sk, ok := s.rw.(io.Seeker)
	if !ok {
		return 0, ErrNotSeekable
	}
	return sk.Seek(offset, whence)
}

// Close releases the owned handle. Only the first call closes; later
// calls return the first call's result.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if s.rw != nil {
			s.closeErr = s.rw.Close()
		}
	})
	return s.closeErr
}

//go:build linux || darwin || freebsd

package fdstream

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"

	"github.com/vnykmshr/streamkit/pkg/stream"
)

// Stream is a stream over a raw OS file descriptor.
//
// The descriptor is borrowed, never owned: the stream does not close it
// at any time, and the caller is responsible for its lifetime. Wrap the
// descriptor's *os.File in filestream instead when ownership transfer
// is wanted.
type Stream struct {
	fd int
}

var (
	_ stream.Stream       = (*Stream)(nil)
	_ stream.VectorReader = (*Stream)(nil)
	_ stream.VectorWriter = (*Stream)(nil)
)

// New creates a Stream borrowing fd.
func New(fd int) *Stream {
	return &Stream{fd: fd}
}

// Fd returns the borrowed descriptor.
func (s *Stream) Fd() int {
	return s.fd
}

// Read reads up to len(p) bytes from the descriptor, retrying when the
// syscall is interrupted. It returns 0, io.EOF at end of input.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := unix.Read(s.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("fdstream: read fd %d: %w", s.fd, err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

// Write loops the write syscall until every byte of p is delivered. A
// syscall that reports progress without error continues the loop; zero
// progress with input remaining is a short-write failure.
func (s *Stream) Write(p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(s.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("fdstream: write fd %d: %w", s.fd, err)
		}
		if n <= 0 {
			return fmt.Errorf("fdstream: write fd %d: %w", s.fd, io.ErrShortWrite)
		}
		p = p[n:]
	}
	return nil
}

// ReadVec is the readv fast path. Like Read, it performs a single
// scatter read and reports how much arrived.
func (s *Stream) ReadVec(bufs [][]byte) (int64, error) {
	if emptyVec(bufs) {
		return 0, nil
	}
	for {
		n, err := unix.Readv(s.fd, bufs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("fdstream: readv fd %d: %w", s.fd, err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return int64(n), nil
	}
}

// WriteVec is the writev fast path, looping until the whole vector is
// delivered. The caller's buffers are not modified.
func (s *Stream) WriteVec(bufs [][]byte) error {
	if emptyVec(bufs) {
		return nil
	}
	// local copy so advancing past written bytes does not touch the
	// caller's vector
	vec := append([][]byte(nil), bufs...)
	for len(vec) > 0 {
		if len(vec[0]) == 0 {
			vec = vec[1:]
			continue
		}
		n, err := unix.Writev(s.fd, vec)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("fdstream: writev fd %d: %w", s.fd, err)
		}
		if n <= 0 {
			return fmt.Errorf("fdstream: writev fd %d: %w", s.fd, io.ErrShortWrite)
		}
		for n > 0 {
			if n >= len(vec[0]) {
				n -= len(vec[0])
				vec = vec[1:]
			} else {
				vec[0] = vec[0][n:]
				n = 0
			}
		}
	}
	return nil
}

func emptyVec(bufs [][]byte) bool {
	for _, b := range bufs {
		if len(b) > 0 {
			return false
		}
	}
	return true
}

package bridge

import (
	"errors"
	"io"
	"sync"

	"github.com/vnykmshr/streamkit/pkg/stream"
)

// ErrClosed is returned for every operation on a closed File.
var ErrClosed = errors.New("bridge: file is closed")

// ErrNotSeekable is returned by Seek when the wrapped stream has no
// cursor to move.
var ErrNotSeekable = errors.New("bridge: stream is not seekable")

// File adapts an owned stream to the standard file-handle surface:
// io.Reader, io.Writer, io.Seeker and io.Closer. Handle-oriented
// callers (bufio, io.Copy, anything written against the buffered-file
// API) can drive the stream without knowing it is not a real file.
//
// The File takes ownership of the stream at construction; Close
// releases whatever the stream owns, exactly once. I/O errors from the
// stream are additionally latched into a sticky indicator readable via
// Err, mirroring the error flag of a native file handle. End of input
// is not an error and never sets the indicator.
type File struct {
	s stream.Stream

	err error

	closed    bool
	closeOnce sync.Once
	closeErr  error
}

var _ io.ReadWriteSeeker = (*File)(nil)
var _ io.Closer = (*File)(nil)

// NewFile wraps s, taking ownership. Release the File, not the stream.
func NewFile(s stream.Stream) *File {
	return &File{s: s}
}

// Read routes through the stream's read. Any length is tolerated,
// including zero.
func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	n, err := f.s.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		f.err = err
	}
	return n, err
}

// Write routes through the stream's all-or-error write, translating it
// back to the counted io.Writer contract.
func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if err := f.s.Write(p); err != nil {
		f.err = err
		return 0, err
	}
	return len(p), nil
}

// Seek moves the stream cursor when the stream supports one.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	sk, ok := f.s.(stream.Seeker)
	if !ok {
		return 0, ErrNotSeekable
	}
	pos, err := sk.Seek(offset, whence)
	if err != nil {
		f.err = err
	}
	return pos, err
}

// Err returns the sticky error indicator: the first non-EOF I/O error
// seen since the last ClearErr.
func (f *File) Err() error {
	return f.err
}

// ClearErr resets the error indicator.
func (f *File) ClearErr() {
	f.err = nil
}

// Close drops the owned stream, releasing any resource it holds. Only
// the first call releases; later calls report ErrClosed.
func (f *File) Close() error {
	first := false
	f.closeOnce.Do(func() {
		first = true
		f.closed = true
		f.closeErr = stream.Close(f.s)
	})
	if !first {
		return ErrClosed
	}
	return f.closeErr
}

package memstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

// ErrInvalidSeek is returned when a seek would place the cursor before
// the start of the stream.
var ErrInvalidSeek = errors.New("memstream: seek before start of stream")

// container is the growable-storage contract a backing buffer must
// satisfy: report its length, resize to a new length (optionally
// zero-filling the region beyond the previous length), and expose its
// storage.
type container interface {
	Len() int
	Grow(n int, zero bool)
	Bytes() []byte
}

// Stream is a memory-backed stream over a growable byte container.
// It holds a reference to the container, not ownership: the bytes stay
// with the caller after the stream is gone.
//
// Reads return data from the cursor onward and 0, io.EOF past the
// written extent. Writes past the current length grow the container
// exactly to fit, zero-filling any sparse gap. Stream also implements
// Seek, so it can back a seekable bridge file.
type Stream struct {
	data container
	pos  int
}

// New creates a Stream over the slice at buf. The slice is grown in
// place; the caller observes all writes through the same pointer.
func New(buf *[]byte) *Stream {
	return &Stream{data: &sliceContainer{p: buf}}
}

// NewByteBuffer creates a Stream over a bytebufferpool buffer. Contract
// and behavior are identical to New; only the backing container type
// differs.
func NewByteBuffer(b *bytebufferpool.ByteBuffer) *Stream {
	return &Stream{data: &byteBufferContainer{b: b}}
}

// Read copies up to len(p) bytes from the cursor position.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	avail := s.data.Len() - s.pos
	if avail <= 0 {
		return 0, io.EOF
	}
	n := len(p)
	if n > avail {
		n = avail
	}
	copy(p, s.data.Bytes()[s.pos:s.pos+n])
	s.pos += n
	return n, nil
}

// Write copies p at the cursor position, growing the container when
// the write extends past its current length. A sparse write (cursor
// beyond the end) backfills the gap with zeros first.
func (s *Stream) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	end := s.pos + len(p)
	if end > s.data.Len() {
		s.data.Grow(end, s.pos > s.data.Len())
	}
	copy(s.data.Bytes()[s.pos:end], p)
	s.pos = end
	return nil
}

// Seek moves the cursor. Seeking past the written extent is allowed;
// a subsequent write backfills zeros, a subsequent read reports EOF.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.pos) + offset
	case io.SeekEnd:
		abs = int64(s.data.Len()) + offset
	default:
		return 0, fmt.Errorf("memstream: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, ErrInvalidSeek
	}
	s.pos = int(abs)
	return abs, nil
}

// Len returns the current length of the backing container.
func (s *Stream) Len() int {
	return s.data.Len()
}

// Pos returns the current cursor position.
func (s *Stream) Pos() int {
	return s.pos
}

// sliceContainer adapts a caller-visible slice to the container
// contract with exact-fit growth.
type sliceContainer struct {
	p *[]byte
}

func (c *sliceContainer) Len() int      { return len(*c.p) }
func (c *sliceContainer) Bytes() []byte { return *c.p }

func (c *sliceContainer) Grow(n int, zero bool) {
	buf := *c.p
	old := len(buf)
	if n <= cap(buf) {
		buf = buf[:n]
		if zero {
			clearRange(buf, old, n)
		}
	} else {
		grown := make([]byte, n)
		copy(grown, buf)
		buf = grown
	}
	*c.p = buf
}

// byteBufferContainer adapts the foreign bytebufferpool buffer type.
type byteBufferContainer struct {
	b *bytebufferpool.ByteBuffer
}

func (c *byteBufferContainer) Len() int      { return len(c.b.B) }
func (c *byteBufferContainer) Bytes() []byte { return c.b.B }

func (c *byteBufferContainer) Grow(n int, zero bool) {
	old := len(c.b.B)
	if n <= cap(c.b.B) {
		c.b.B = c.b.B[:n]
		if zero {
			clearRange(c.b.B, old, n)
		}
	} else {
		grown := make([]byte, n)
		copy(grown, c.b.B)
		c.b.B = grown
	}
}

// clearRange zeroes buf[from:to]. Reslicing within capacity can expose
// stale bytes from earlier, longer contents.
func clearRange(buf []byte, from, to int) {
	for i := from; i < to; i++ {
		buf[i] = 0
	}
}

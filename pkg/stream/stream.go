package stream

import (
	"io"
)

// Writer is the write capability every stream sink must satisfy.
type Writer interface {
	// Write writes all of p to the stream. A write that cannot deliver
	// every byte fails as a whole; partial progress is never reported
	// as success.
	Write(p []byte) error
}

// Reader is the read capability every stream source must satisfy.
type Reader interface {
	// Read reads up to len(p) bytes into p and returns the number of
	// bytes read. It returns 0, io.EOF at end of input. Errors other
	// than io.EOF indicate an I/O failure, not end of input.
	Read(p []byte) (int, error)
}

// Stream is something that is both readable and writable.
//
// Stream instances are single-owner and not safe for concurrent use;
// callers sharing one instance across goroutines must serialize access.
type Stream interface {
	Reader
	Writer
}

// Seeker is an optional capability for streams with a movable cursor.
// The bridge package uses it to back the file handle's seek operation.
type Seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

// VectorWriter is an optional fast path for scatter/gather writes.
// Implementing it changes performance, never semantics: WriteVec must
// behave exactly like sequential Write calls over the buffers.
type VectorWriter interface {
	WriteVec(bufs [][]byte) error
}

// VectorReader is the read-side counterpart of VectorWriter.
type VectorReader interface {
	ReadVec(bufs [][]byte) (int64, error)
}

// WriteVec writes every buffer in bufs to w, in order. It uses the
// writer's own vectored implementation when available and otherwise
// serializes into single-buffer Write calls. An empty vector is a
// no-op success.
func WriteVec(w Writer, bufs [][]byte) error {
	if vw, ok := w.(VectorWriter); ok {
		return vw.WriteVec(bufs)
	}
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		if err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// ReadVec fills the buffers in bufs sequentially from r and returns the
// total number of bytes read. Reaching end of input mid-vector is not
// an error: ReadVec stops and reports the bytes it got. It returns
// 0, io.EOF only when the source is already exhausted, and 0, nil for
// an empty vector.
func ReadVec(r Reader, bufs [][]byte) (int64, error) {
	if vr, ok := r.(VectorReader); ok {
		return vr.ReadVec(bufs)
	}
	var total int64
	for _, b := range bufs {
		n, err := ReadFull(r, b)
		total += int64(n)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			if total == 0 {
				return 0, io.EOF
			}
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFull reads exactly len(p) bytes from r, calling Read as many
// times as the source needs. It returns io.EOF if no bytes were read
// and io.ErrUnexpectedEOF if the source ended after a partial fill.
func ReadFull(r Reader, p []byte) (int, error) {
	var n int
	var err error
	for n < len(p) && err == nil {
		var m int
		m, err = r.Read(p[n:])
		n += m
	}
	if n >= len(p) {
		return n, nil
	}
	if n > 0 && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Close releases the resource owned by s, if it owns one. Streams that
// do not implement io.Closer hold only borrowed resources and are left
// untouched. Owning streams guarantee release happens at most once, so
// Close is always safe to defer.
func Close(s any) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

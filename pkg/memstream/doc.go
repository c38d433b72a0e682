/*
Package memstream provides memory-backed streams over growable byte
containers.

A Stream borrows its container from the caller; the written bytes remain
accessible after the stream is discarded. Two container variants exist
with identical behavior:

	var buf []byte
	s := memstream.New(&buf)          // plain slice

	bb := bytebufferpool.Get()
	s := memstream.NewByteBuffer(bb)  // pooled buffer, for interop with
	                                  // components that trade in
	                                  // *bytebufferpool.ByteBuffer

Reads and writes share one cursor. Writing past the end grows the
container exactly to fit; writing after seeking beyond the end zero-fills
the gap. Reading past the written extent reports io.EOF, never an error.
*/
package memstream

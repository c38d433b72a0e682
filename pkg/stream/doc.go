/*
Package stream defines the capability contracts shared by every stream in
streamkit, plus helpers that derive the vectored and full-read operations
from the single-buffer primitives.

The contract is deliberately smaller than io.Reader/io.Writer:

  - Writer.Write either delivers every byte or fails. There is no short
    write to check for.
  - Reader.Read returns a count and reserves 0, io.EOF for end of input,
    so EOF and I/O errors are never conflated.

A type that implements the two single-buffer methods is fully usable;
WriteVec, ReadVec and ReadFull are expressed in terms of them. Types may
additionally implement VectorWriter or VectorReader as a pure
optimization; the helpers pick the fast path up automatically.

Example:

	var sink []byte
	s := memstream.New(&sink)

	if err := stream.WriteVec(s, [][]byte{hdr, body}); err != nil {
		return err
	}

	buf := make([]byte, 16)
	if _, err := stream.ReadFull(s, buf); err != nil {
		return err
	}

Streams are not safe for concurrent use. One goroutine per instance, or
external locking.
*/
package stream

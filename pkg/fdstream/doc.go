/*
Package fdstream provides a stream over a raw OS file descriptor.

The descriptor is borrowed: the stream never closes it, regardless of
how it is discarded. This makes fdstream the right wrapper for
descriptors whose lifetime belongs elsewhere, like inherited pipes or
sockets managed by a poller. For owned handles use filestream, which
releases on Close.

Reads and writes go straight to the read/write syscalls, with
interrupted calls retried and short writes looped until every requested
byte is delivered. ReadVec and WriteVec map to readv/writev.

	r, w, _ := os.Pipe()
	src := fdstream.New(int(r.Fd()))
	dst := fdstream.New(int(w.Fd()))

	_ = dst.Write(payload)
	n, _ := src.Read(buf)

Unix-only.
*/
package fdstream

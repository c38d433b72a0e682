/*
Package streamkit provides a composable byte-stream abstraction layer: minimal
read/write capability interfaces, leaf streams over several kinds of backing
resources, write-side decorators, and a bridge to the standard file-handle API.

Core Contract (pkg/stream):
  - Writer: all-or-nothing writes
  - Reader: counted reads with io.EOF at end of input
  - Vectored and full-read helpers built on the single-buffer primitives

Leaf Streams:
  - memstream: growable in-memory buffers (internal slice or foreign buffer)
  - fdstream: raw file descriptors, borrowed, never closed
  - filestream: native file handles, owned, released exactly once
  - redisstream: Redis string keys with cursor semantics

Decorators (pkg/chunkstream, pkg/asyncwriter):
  - chunkstream: accumulate writes into fixed-size chunks with a one-time
    finalize flush
  - asyncwriter: background buffered writing with interval or cron flushing

Bridge (pkg/bridge):
  - wrap an owned stream as an io.ReadWriteSeeker/Closer file handle so
    handle-oriented callers can drive it

Example usage:

	import (
		"github.com/vnykmshr/streamkit/pkg/chunkstream"
		"github.com/vnykmshr/streamkit/pkg/memstream"
	)

	var sink []byte
	base := memstream.New(&sink)
	w := chunkstream.New(base, 4096)
	_ = w.Write(payload)
	_ = w.Close() // flushes the final partial chunk
*/
package streamkit

/*
Package chunkstream provides write-side decorators: a pass-through
Filter and a chunking Writer that accumulates bytes and emits them
downstream in fixed-size blocks.

The Writer separates accumulation from emission. Incoming writes land in
an internal buffer; whenever the buffer fills, the whole region goes to
the emit function as non-final chunks. Close runs the one-time finalize
step, handing over the remaining tail with final=true. Block ciphers,
fixed-record protocols and batched syscalls plug in a custom EmitFunc
instead of re-deriving the buffering logic; the final flag tells them
when the last, possibly undersized, block arrives.

	base := memstream.New(&sink)
	w := chunkstream.New(base, 4096)

	for _, part := range parts {
		if err := w.Write(part); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil { // flushes the tail
		return err
	}

Ordering matters: Close must run before the wrapped stream is released,
and exactly once. A second Close reports ErrFinalized rather than
re-emitting. After an emission failure the writer is poisoned: the
failed Write reports the error, everything after reports ErrFailed, and
no further flushing is attempted.

Like the leaf streams, chunkstream types are not safe for concurrent
use. For a thread-safe buffered front, see pkg/asyncwriter.
*/
package chunkstream

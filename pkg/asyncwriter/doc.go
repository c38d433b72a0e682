/*
Package asyncwriter provides asynchronous buffered writing over a
stream.

AsyncWriter accumulates writes in memory and flushes them to the
underlying stream.Writer from a background goroutine. It is the one
deliberately thread-safe component in streamkit: many producers can
write through it concurrently while the wrapped single-owner stream
sees one serialized caller.

# Quick Start

	s := filestream.NewFile(logFile)
	w := asyncwriter.New(s)
	defer w.Close()

	w.Write(entry)
	w.Flush(context.Background())

# Flush policies

Flushing happens when the buffer fills, on a rolling interval, or on a
cron schedule for flushes aligned to wall-clock boundaries:

	w, err := asyncwriter.NewWithConfig(s, asyncwriter.Config{
		BufferSize:    256 * 1024,
		FlushInterval: 0,
		FlushSchedule: "0 * * * *", // top of every hour
	})

# Backpressure

With BlockOnFull set, writers block until buffer space frees up;
otherwise Write returns ErrBufferFull and the OnBufferFull callback
fires. Failed flushes are retried MaxRetries times; the underlying
all-or-error contract means a retry never duplicates bytes.

# Graceful shutdown

Close flushes remaining data and stops the background goroutines.
Writes after Close return ErrWriterClosed.
*/
package asyncwriter

/*
Package redisstream provides a stream over a Redis string key.

The stream keeps a local cursor and maps reads to GETRANGE and writes
to SETRANGE, so it behaves like a memory-backed stream whose container
happens to live in Redis: reads past the value's extent report io.EOF,
writes past it grow the value, and sparse writes are zero-filled by
Redis itself.

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	s := redisstream.New(client, "artifacts:build-1793")

	if err := s.Write(payload); err != nil {
		return err
	}

The client and the key belong to the caller; the stream owns neither.
Each operation runs under its own timeout (Config.OpTimeout). Like the
other streams, one instance serves one goroutine at a time; the shared
state here is the cursor, not the Redis value.
*/
package redisstream

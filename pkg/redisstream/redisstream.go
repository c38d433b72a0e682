package redisstream

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/streamkit/pkg/stream"
)

// RedisError wraps Redis operation failures with the operation that
// caused them.
type RedisError struct {
	Op  string
	Err error
}

func (e *RedisError) Error() string {
	return fmt.Sprintf("redisstream: %s: %v", e.Op, e.Err)
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

// Config holds configuration options for a Redis-backed stream.
type Config struct {
	// Context is the base context for Redis operations.
	// Default: context.Background().
	Context context.Context

	// OpTimeout bounds each Redis operation.
	// Default: 5 seconds.
	OpTimeout time.Duration
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Context:   context.Background(),
		OpTimeout: 5 * time.Second,
	}
}

// Stream is a stream over a Redis string key, with the same cursor
// semantics as a memory-backed stream: reads return 0, io.EOF past the
// value's extent, writes land at the cursor via SETRANGE, and Redis
// zero-pads any sparse gap. The key and the client both belong to the
// caller; discarding the stream releases nothing.
type Stream struct {
	client redis.Cmdable
	key    string
	config Config
	pos    int64
}

var _ stream.Stream = (*Stream)(nil)

// New creates a Stream over key with default configuration.
func New(client redis.Cmdable, key string) *Stream {
	return NewWithConfig(client, key, DefaultConfig())
}

// NewWithConfig creates a Stream over key with the given configuration.
func NewWithConfig(client redis.Cmdable, key string, config Config) *Stream {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.OpTimeout <= 0 {
		config.OpTimeout = DefaultConfig().OpTimeout
	}
	return &Stream{
		client: client,
		key:    key,
		config: config,
	}
}

// Read fetches up to len(p) bytes at the cursor via GETRANGE.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	ctx, cancel := s.opContext()
	defer cancel()

	val, err := s.client.GetRange(ctx, s.key, s.pos, s.pos+int64(len(p))-1).Result()
	if err != nil {
		return 0, &RedisError{"getrange", err}
	}
	if len(val) == 0 {
		// missing key and cursor-past-extent both read as end of input
		return 0, io.EOF
	}
	n := copy(p, val)
	s.pos += int64(n)
	return n, nil
}

// Write places p at the cursor via SETRANGE. Writing past the current
// value length grows it; Redis backfills sparse gaps with zero bytes.
func (s *Stream) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	ctx, cancel := s.opContext()
	defer cancel()

	if err := s.client.SetRange(ctx, s.key, s.pos, string(p)).Err(); err != nil {
		return &RedisError{"setrange", err}
	}
	s.pos += int64(len(p))
	return nil
}

// Seek moves the cursor. io.SeekEnd consults the value's current
// length with STRLEN.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		length, err := s.Len()
		if err != nil {
			return 0, err
		}
		abs = length + offset
	default:
		return 0, fmt.Errorf("redisstream: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("redisstream: seek before start of stream")
	}
	s.pos = abs
	return abs, nil
}

// Len returns the current length of the backing value.
func (s *Stream) Len() (int64, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	length, err := s.client.StrLen(ctx, s.key).Result()
	if err != nil {
		return 0, &RedisError{"strlen", err}
	}
	return length, nil
}

// Pos returns the current cursor position.
func (s *Stream) Pos() int64 {
	return s.pos
}

func (s *Stream) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(s.config.Context, s.config.OpTimeout)
}

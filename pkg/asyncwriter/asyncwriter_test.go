package asyncwriter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/streamkit/internal/testutil"
)

func TestNew(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)
	defer func() { _ = writer.Close() }()

	testutil.AssertEqual(t, writer.IsClosed(), false)
	testutil.AssertEqual(t, writer.BufferSize(), 0)
	testutil.AssertEqual(t, writer.BufferCapacity() > 0, true)
}

func TestNewWithConfig(t *testing.T) {
	underlying := testutil.NewMockWriter()
	config := Config{
		BufferSize:    1024,
		FlushInterval: 100 * time.Millisecond,
		BlockOnFull:   false,
		MaxRetries:    5,
		RetryDelay:    50 * time.Millisecond,
	}

	writer, err := NewWithConfig(underlying, config)
	testutil.AssertNoError(t, err)
	defer func() { _ = writer.Close() }()

	testutil.AssertEqual(t, writer.IsClosed(), false)
	testutil.AssertEqual(t, writer.BufferCapacity(), 1024)
}

func TestInvalidFlushSchedule(t *testing.T) {
	_, err := NewWithConfig(testutil.NewMockWriter(), Config{
		FlushSchedule: "not a cron expression",
	})
	testutil.AssertError(t, err)
}

func TestBasicWrite(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)
	defer func() { _ = writer.Close() }()

	err := writer.Write([]byte("Hello, World!"))
	testutil.AssertNoError(t, err)

	err = writer.Flush(context.Background())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, underlying.String(), "Hello, World!")
}

func TestMultipleWrites(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)
	defer func() { _ = writer.Close() }()

	for _, part := range []string{"Hello", ", ", "World", "!"} {
		testutil.AssertNoError(t, writer.Write([]byte(part)))
	}
	testutil.AssertNoError(t, writer.Flush(context.Background()))

	testutil.AssertEqual(t, underlying.String(), "Hello, World!")
}

func TestCloseFlushesRemaining(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)

	testutil.AssertNoError(t, writer.Write([]byte("pending")))
	testutil.AssertNoError(t, writer.Close())

	testutil.AssertEqual(t, underlying.String(), "pending")
	testutil.AssertEqual(t, writer.IsClosed(), true)
}

func TestWriteAfterClose(t *testing.T) {
	writer := New(testutil.NewMockWriter())
	testutil.AssertNoError(t, writer.Close())

	err := writer.Write([]byte("late"))
	if !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("got %v, want ErrWriterClosed", err)
	}
}

func TestCloseTwiceIsSafe(t *testing.T) {
	writer := New(testutil.NewMockWriter())
	testutil.AssertNoError(t, writer.Close())
	testutil.AssertNoError(t, writer.Close())
}

func TestBufferFullNonBlocking(t *testing.T) {
	underlying := testutil.NewMockWriter()
	fullEvents := 0
	writer, err := NewWithConfig(underlying, Config{
		BufferSize:    8,
		FlushInterval: 0,
		BlockOnFull:   false,
		OnBufferFull:  func() { fullEvents++ },
	})
	testutil.AssertNoError(t, err)
	defer func() { _ = writer.Close() }()

	err = writer.Write(testutil.Pattern(100))
	if !errors.Is(err, ErrBufferFull) {
		t.Fatalf("got %v, want ErrBufferFull", err)
	}
	testutil.AssertEqual(t, fullEvents, 1)
}

func TestRetriesOnFlushFailure(t *testing.T) {
	underlying := testutil.NewMockWriter()
	sentinel := errors.New("transient")
	underlying.SetAlwaysError(sentinel)

	writer, err := NewWithConfig(underlying, Config{
		BufferSize:    1024,
		FlushInterval: 0,
		BlockOnFull:   true,
		MaxRetries:    2,
		RetryDelay:    time.Millisecond,
	})
	testutil.AssertNoError(t, err)
	defer func() { _ = writer.Close() }()

	testutil.AssertNoError(t, writer.Write([]byte("doomed")))
	flushErr := writer.Flush(context.Background())
	if !errors.Is(flushErr, sentinel) {
		t.Fatalf("got %v, want %v", flushErr, sentinel)
	}

	// initial attempt plus two retries
	testutil.AssertEqual(t, underlying.WriteCount(), 3)
}

func TestIntervalFlush(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer, err := NewWithConfig(underlying, Config{
		BufferSize:    1024,
		FlushInterval: 20 * time.Millisecond,
		BlockOnFull:   true,
	})
	testutil.AssertNoError(t, err)
	defer func() { _ = writer.Close() }()

	testutil.AssertNoError(t, writer.Write([]byte("tick")))

	deadline := time.Now().Add(time.Second)
	for underlying.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	testutil.AssertEqual(t, underlying.String(), "tick")
}

func TestStats(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)
	defer func() { _ = writer.Close() }()

	testutil.AssertNoError(t, writer.Write([]byte("12345")))
	testutil.AssertNoError(t, writer.Flush(context.Background()))

	stats := writer.Stats()
	testutil.AssertEqual(t, stats.WriteCount, int64(1))
	testutil.AssertEqual(t, stats.BytesBuffered, int64(5))
	testutil.AssertEqual(t, stats.BytesFlushed, int64(5))
	testutil.AssertEqual(t, stats.FlushCount >= 1, true)
}

func TestWriteContextCancellation(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)
	defer func() { _ = writer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writer.WriteContext(ctx, []byte("canceled"))
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled or success", err)
	}
}

func TestConcurrentWriters(t *testing.T) {
	underlying := testutil.NewMockWriter()
	writer := New(underlying)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				_ = writer.Write([]byte("x"))
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	testutil.AssertNoError(t, writer.Close())
	testutil.AssertEqual(t, underlying.Len(), 400)
}

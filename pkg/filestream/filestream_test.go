package filestream_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vnykmshr/streamkit/internal/testutil"
	"github.com/vnykmshr/streamkit/pkg/filestream"
	"github.com/vnykmshr/streamkit/pkg/stream"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "stream.dat"))
	testutil.AssertNoError(t, err)
	return f
}

func TestFileRoundTrip(t *testing.T) {
	s := filestream.NewFile(tempFile(t))
	defer s.Close()

	data := testutil.Pattern(10_000)
	testutil.AssertNoError(t, s.Write(data))

	_, err := s.Seek(0, io.SeekStart)
	testutil.AssertNoError(t, err)

	got := make([]byte, len(data))
	n, err := stream.ReadFull(s, got)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, len(data))
	testutil.AssertBytes(t, got, data)
}

func TestReadEOF(t *testing.T) {
	s := filestream.NewFile(tempFile(t))
	defer s.Close()

	testutil.AssertNoError(t, s.Write([]byte("abc")))

	// cursor is at the end
	n, err := s.Read(make([]byte, 4))
	testutil.AssertEqual(t, n, 0)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestNilHandleZeroState(t *testing.T) {
	s := filestream.NewFile(nil)

	err := s.Write([]byte("x"))
	if !errors.Is(err, filestream.ErrNoHandle) {
		t.Fatalf("got %v, want ErrNoHandle", err)
	}
	_, err = s.Read(make([]byte, 1))
	if !errors.Is(err, filestream.ErrNoHandle) {
		t.Fatalf("got %v, want ErrNoHandle", err)
	}

	testutil.AssertNoError(t, s.Close())
	testutil.AssertNoError(t, s.Close())
}

func TestCloseReleasesExactlyOnce(t *testing.T) {
	rw := &countingCloser{}
	s := filestream.NewReadWriter(rw)

	testutil.AssertNoError(t, s.Close())
	testutil.AssertNoError(t, s.Close())
	testutil.AssertNoError(t, s.Close())
	testutil.AssertEqual(t, rw.closed, 1)
}

func TestCloseErrorIsSticky(t *testing.T) {
	sentinel := errors.New("close failed")
	rw := &countingCloser{closeErr: sentinel}
	s := filestream.NewReadWriter(rw)

	if err := s.Close(); !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
	// second call reports the same result without re-closing
	if err := s.Close(); !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
	testutil.AssertEqual(t, rw.closed, 1)
}

func TestWriteLoopsShortWrites(t *testing.T) {
	rw := &trickleWriter{}
	s := filestream.NewReadWriter(rw)

	data := testutil.Pattern(100)
	testutil.AssertNoError(t, s.Write(data))
	testutil.AssertBytes(t, rw.got, data)
}

func TestWriteZeroProgressFails(t *testing.T) {
	s := filestream.NewReadWriter(&stuckWriter{})

	err := s.Write([]byte("never lands"))
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("got %v, want io.ErrShortWrite", err)
	}
}

func TestSeekOnNonSeekableHandle(t *testing.T) {
	s := filestream.NewReadWriter(&countingCloser{})

	_, err := s.Seek(0, io.SeekStart)
	if !errors.Is(err, filestream.ErrNotSeekable) {
		t.Fatalf("got %v, want ErrNotSeekable", err)
	}
}

// countingCloser counts Close calls and does no I/O.
type countingCloser struct {
	closed   int
	closeErr error
}

func (c *countingCloser) Read(p []byte) (int, error)  { return 0, io.EOF }
func (c *countingCloser) Write(p []byte) (int, error) { return len(p), nil }
func (c *countingCloser) Close() error {
	c.closed++
	return c.closeErr
}

// trickleWriter accepts at most 7 bytes per call, forcing the write
// loop to iterate.
type trickleWriter struct {
	got []byte
}

func (w *trickleWriter) Read(p []byte) (int, error) { return 0, io.EOF }
func (w *trickleWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > 7 {
		n = 7
	}
	w.got = append(w.got, p[:n]...)
	return n, nil
}
func (w *trickleWriter) Close() error { return nil }

// stuckWriter reports no progress and no error.
type stuckWriter struct{}

func (stuckWriter) Read(p []byte) (int, error)  { return 0, io.EOF }
func (stuckWriter) Write(p []byte) (int, error) { return 0, nil }
func (stuckWriter) Close() error                { return nil }

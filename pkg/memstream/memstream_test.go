package memstream_test

import (
	"errors"
	"io"
	"testing"

	"github.com/valyala/bytebufferpool"

	"github.com/vnykmshr/streamkit/internal/testutil"
	"github.com/vnykmshr/streamkit/pkg/memstream"
)

func TestRoundTrip(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	data := testutil.Pattern(1000)
	testutil.AssertNoError(t, s.Write(data))
	testutil.AssertEqual(t, s.Len(), 1000)

	_, err := s.Seek(0, io.SeekStart)
	testutil.AssertNoError(t, err)

	got := make([]byte, 1000)
	n, err := s.Read(got)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 1000)
	testutil.AssertBytes(t, got, data)
}

func TestReadPastEndIsEOF(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	testutil.AssertNoError(t, s.Write([]byte("abc")))

	// cursor sits at the end after the write
	n, err := s.Read(make([]byte, 4))
	testutil.AssertEqual(t, n, 0)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}

	// far past the extent is still EOF, not an error
	_, err = s.Seek(100, io.SeekStart)
	testutil.AssertNoError(t, err)
	n, err = s.Read(make([]byte, 4))
	testutil.AssertEqual(t, n, 0)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestShortRead(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	testutil.AssertNoError(t, s.Write([]byte("abcde")))
	_, err := s.Seek(2, io.SeekStart)
	testutil.AssertNoError(t, err)

	got := make([]byte, 10)
	n, err := s.Read(got)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 3)
	testutil.AssertBytes(t, got[:n], []byte("cde"))
}

func TestSparseWriteBackfillsZeros(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	testutil.AssertNoError(t, s.Write([]byte("ab")))
	_, err := s.Seek(6, io.SeekStart)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Write([]byte("cd")))

	testutil.AssertBytes(t, buf, []byte{'a', 'b', 0, 0, 0, 0, 'c', 'd'})
}

func TestOverwriteMiddle(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	testutil.AssertNoError(t, s.Write([]byte("abcdef")))
	_, err := s.Seek(2, io.SeekStart)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Write([]byte("XY")))

	testutil.AssertBytes(t, buf, []byte("abXYef"))
	testutil.AssertEqual(t, s.Pos(), 4)
	testutil.AssertEqual(t, s.Len(), 6)
}

func TestSeek(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)
	testutil.AssertNoError(t, s.Write([]byte("abcdef")))

	pos, err := s.Seek(-2, io.SeekEnd)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos, int64(4))

	pos, err = s.Seek(-1, io.SeekCurrent)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, pos, int64(3))

	_, err = s.Seek(-10, io.SeekCurrent)
	if !errors.Is(err, memstream.ErrInvalidSeek) {
		t.Fatalf("got %v, want ErrInvalidSeek", err)
	}

	_, err = s.Seek(0, 42)
	testutil.AssertError(t, err)
}

func TestZeroLengthOps(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	testutil.AssertNoError(t, s.Write(nil))
	testutil.AssertEqual(t, s.Len(), 0)

	n, err := s.Read(nil)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 0)
}

func TestCallerSeesGrowth(t *testing.T) {
	var buf []byte
	s := memstream.New(&buf)

	testutil.AssertNoError(t, s.Write([]byte("hello")))
	testutil.AssertBytes(t, buf, []byte("hello"))

	testutil.AssertNoError(t, s.Write([]byte(" world")))
	testutil.AssertBytes(t, buf, []byte("hello world"))
}

func TestByteBufferVariantParity(t *testing.T) {
	bb := &bytebufferpool.ByteBuffer{}
	s := memstream.NewByteBuffer(bb)

	data := testutil.Pattern(512)
	testutil.AssertNoError(t, s.Write(data))

	_, err := s.Seek(0, io.SeekStart)
	testutil.AssertNoError(t, err)

	got := make([]byte, 512)
	n, err := s.Read(got)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, 512)
	testutil.AssertBytes(t, got, data)
	testutil.AssertBytes(t, bb.B, data)
}

func TestByteBufferSparseWrite(t *testing.T) {
	bb := &bytebufferpool.ByteBuffer{}
	s := memstream.NewByteBuffer(bb)

	testutil.AssertNoError(t, s.Write([]byte("xy")))
	_, err := s.Seek(5, io.SeekStart)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Write([]byte("z")))

	testutil.AssertBytes(t, bb.B, []byte{'x', 'y', 0, 0, 0, 'z'})
}

package chunkstream

import (
	"testing"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) error { return nil }

// BenchmarkWriteAligned measures chunk-aligned writes.
func BenchmarkWriteAligned(b *testing.B) {
	w := New(discardWriter{}, 4096)
	data := make([]byte, 4096)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.Write(data); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWriteUnaligned measures writes that straddle chunk boundaries.
func BenchmarkWriteUnaligned(b *testing.B) {
	w := New(discardWriter{}, 4096)
	data := make([]byte, 1000)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.Write(data); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWriteBatched measures the multi-chunk buffer configuration.
func BenchmarkWriteBatched(b *testing.B) {
	w := NewWithConfig(discardWriter{}, Config{
		ChunkSize:  4096,
		BufferSize: 64 * 1024,
	})
	data := make([]byte, 1000)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := w.Write(data); err != nil {
			b.Fatal(err)
		}
	}
}

// Package zstd provides Zstandard compression support for rwkit.
//
// Levels follow the zstd command line scale (1 fastest, 19+ smallest) and
// are mapped onto the encoder's speed presets.
//
// Basic usage:
//
//	f, _ := os.Create("data.jsonl.zst")
//	zw, _ := zstd.NewWriterLevel(f, 19)
//	// Write data...
//	zw.Close()
package zstd

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// DefaultLevel is used when no level is requested.
const DefaultLevel = 3

// EncoderLevel converts a zstd command line level to the encoder preset.
func EncoderLevel(level int) zstd.EncoderLevel {
	return zstd.EncoderLevelFromZstd(level)
}

// Writer wraps an io.WriteCloser with zstd compression.
type Writer struct {
	zw     *zstd.Encoder
	closer io.Closer
	closed bool
	mu     sync.Mutex
}

// NewWriter creates a new zstd writer with default compression level.
func NewWriter(w io.WriteCloser) (*Writer, error) {
	return NewWriterLevel(w, DefaultLevel)
}

// NewWriterLevel creates a new zstd writer with the specified level.
// Any positive level is accepted.
func NewWriterLevel(w io.WriteCloser, level int) (*Writer, error) {
	if level < 1 {
		return nil, fmt.Errorf("zstd level %d: must be positive", level)
	}
	return NewWriterWithOptions(w, zstd.WithEncoderLevel(EncoderLevel(level)))
}

// NewWriterWithOptions creates a new zstd writer with custom options.
// This allows fine-grained control over compression parameters.
func NewWriterWithOptions(w io.WriteCloser, opts ...zstd.EOption) (*Writer, error) {
	zw, err := zstd.NewWriter(w, opts...)
	if err != nil {
		return nil, err
	}
	return &Writer{
		zw:     zw,
		closer: w,
	}, nil
}

// Write writes compressed data to the underlying writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}

	return w.zw.Write(p)
}

// Flush encodes any buffered data as a complete block.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return io.ErrClosedPipe
	}

	return w.zw.Flush()
}

// Close flushes any remaining data and closes both the zstd encoder
// and the underlying writer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true

	// Close zstd encoder first (writes the frame epilogue)
	if err := w.zw.Close(); err != nil {
		_ = w.closer.Close()
		return err
	}

	return w.closer.Close()
}

var _ io.WriteCloser = (*Writer)(nil)

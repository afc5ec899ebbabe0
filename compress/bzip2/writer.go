// Package bzip2 provides bzip2 compression support for rwkit.
//
// The standard library only decompresses bzip2, so writing goes through
// github.com/dsnet/compress/bzip2.
package bzip2

import (
	"fmt"
	"io"
	"sync"

	"github.com/dsnet/compress/bzip2"
)

// Compression levels accepted by NewWriterLevel.
const (
	BestSpeed          = bzip2.BestSpeed
	BestCompression    = bzip2.BestCompression
	DefaultCompression = bzip2.DefaultCompression
)

// Writer wraps an io.WriteCloser with bzip2 compression.
type Writer struct {
	bw     *bzip2.Writer
	closer io.Closer
	closed bool
	mu     sync.Mutex
}

// NewWriter creates a new bzip2 writer with default compression level.
func NewWriter(w io.WriteCloser) (*Writer, error) {
	return NewWriterLevel(w, DefaultCompression)
}

// NewWriterLevel creates a new bzip2 writer with a block size level from 1 to 9.
func NewWriterLevel(w io.WriteCloser, level int) (*Writer, error) {
	if level < BestSpeed || level > BestCompression {
		return nil, fmt.Errorf("bzip2 level %d: must be between %d and %d", level, BestSpeed, BestCompression)
	}
	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
	if err != nil {
		return nil, err
	}
	return &Writer{
		bw:     bw,
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

	return w.bw.Write(p)
}

// Close flushes any remaining data and closes both the bzip2 writer
// and the underlying writer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true

	if err := w.bw.Close(); err != nil {
		_ = w.closer.Close()
		return err
	}

	return w.closer.Close()
}

var _ io.WriteCloser = (*Writer)(nil)

// Package xz provides xz (LZMA2) compression support for rwkit.
package xz

import (
	"fmt"
	"io"
	"sync"

	"github.com/ulikunitz/xz"
)

// Presets accepted by NewWriterLevel.
const (
	MinPreset     = 0
	MaxPreset     = 9
	DefaultPreset = 6
)

// dictCaps maps xz presets to LZMA2 dictionary sizes, following xz-utils.
var dictCaps = [...]int{
	256 << 10,
	1 << 20,
	2 << 20,
	4 << 20,
	4 << 20,
	8 << 20,
	8 << 20,
	16 << 20,
	32 << 20,
	64 << 20,
}

// DictCap returns the dictionary capacity used for the given preset.
func DictCap(preset int) (int, error) {
	if preset < MinPreset || preset > MaxPreset {
		return 0, fmt.Errorf("xz preset %d: must be between %d and %d", preset, MinPreset, MaxPreset)
	}
	return dictCaps[preset], nil
}

// Writer wraps an io.WriteCloser with xz compression.
type Writer struct {
	xw     *xz.Writer
	closer io.Closer
	closed bool
	mu     sync.Mutex
}

// NewWriter creates a new xz writer with the default preset.
func NewWriter(w io.WriteCloser) (*Writer, error) {
	return NewWriterLevel(w, DefaultPreset)
}

// NewWriterLevel creates a new xz writer for a preset from 0 to 9.
func NewWriterLevel(w io.WriteCloser, preset int) (*Writer, error) {
	dictCap, err := DictCap(preset)
	if err != nil {
		return nil, err
	}
	cfg := xz.WriterConfig{DictCap: dictCap}
	xw, err := cfg.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &Writer{
		xw:     xw,
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

	return w.xw.Write(p)
}

// Close writes the stream footer and closes the underlying writer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true

	if err := w.xw.Close(); err != nil {
		_ = w.closer.Close()
		return err
	}

	return w.closer.Close()
}

var _ io.WriteCloser = (*Writer)(nil)

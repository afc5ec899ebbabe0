package jsonl

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/grokify/rwkit"
)

const (
	// DefaultBufferSize is the default buffer size for record readers and writers.
	DefaultBufferSize = 64 * 1024 // 64KB

	// MaxRecordSize is the longest line a RecordReader accepts.
	MaxRecordSize = 64 * 1024 * 1024 // 64MB
)

// RecordWriter implements rwkit.RecordWriter for JSON Lines.
// Each record is written as a single line followed by a newline character.
type RecordWriter struct {
	w       *bufio.Writer
	closer  io.Closer
	closed  bool
	mu      sync.Mutex
	newline []byte
}

// NewRecordWriter creates a record writer on w.
// w is closed when the record writer is closed.
func NewRecordWriter(w io.WriteCloser) *RecordWriter {
	return NewRecordWriterSize(w, DefaultBufferSize)
}

// NewRecordWriterSize creates a record writer with the specified buffer size.
func NewRecordWriterSize(w io.WriteCloser, bufferSize int) *RecordWriter {
	return &RecordWriter{
		w:       bufio.NewWriterSize(w, bufferSize),
		closer:  w,
		newline: []byte{'\n'},
	}
}

// Write writes a single record. The record must not contain a newline.
func (w *RecordWriter) Write(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return rwkit.ErrHandleClosed
	}

	if _, err := w.w.Write(data); err != nil {
		return err
	}
	_, err := w.w.Write(w.newline)
	return err
}

// WriteJSON writes a single record, trimming any trailing whitespace/newlines
// before adding the standard newline delimiter.
func (w *RecordWriter) WriteJSON(data []byte) error {
	return w.Write(bytes.TrimRight(data, " \t\r\n"))
}

// Flush flushes any buffered data to the underlying writer.
func (w *RecordWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return rwkit.ErrHandleClosed
	}

	return w.w.Flush()
}

// Close flushes any remaining data and closes the writer.
func (w *RecordWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true

	if err := w.w.Flush(); err != nil {
		_ = w.closer.Close()
		return err
	}

	return w.closer.Close()
}

// RecordReader implements rwkit.RecordReader for JSON Lines.
// Each record is one line; blank lines are skipped.
type RecordReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	closed  bool
	mu      sync.Mutex
}

// NewRecordReader creates a record reader on r.
// r is closed when the record reader is closed.
func NewRecordReader(r io.ReadCloser) *RecordReader {
	return NewRecordReaderSize(r, DefaultBufferSize)
}

// NewRecordReaderSize creates a record reader with the specified initial
// buffer size. Lines may grow the buffer up to MaxRecordSize.
func NewRecordReaderSize(r io.ReadCloser, bufferSize int) *RecordReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufferSize), max(bufferSize, MaxRecordSize))
	return &RecordReader{
		scanner: scanner,
		closer:  r,
	}
}

// Read reads the next record.
// Returns io.EOF when no more records are available.
// The returned slice is a copy.
func (r *RecordReader) Read() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, rwkit.ErrHandleClosed
	}

	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		result := make([]byte, len(line))
		copy(result, line)
		return result, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}

// Close releases any resources held by the reader.
func (r *RecordReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	return r.closer.Close()
}

var (
	_ rwkit.RecordWriter = (*RecordWriter)(nil)
	_ rwkit.RecordReader = (*RecordReader)(nil)
)

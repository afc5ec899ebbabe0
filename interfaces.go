// Package rwkit reads and writes files that may be plain or wrapped in a
// single-member compression or container format (gzip, bzip2, xz, zip, tar,
// zstd), inferring the format from the filename.
//
// The stream package opens one logical byte stream per file. The codec
// packages under format/ read and write text, lines, JSON, JSON Lines and
// YAML on top of it and register themselves with this package, so Read and
// Write can dispatch on the file extension.
//
// Basic usage:
//
//	import _ "github.com/grokify/rwkit/format/all"
//
//	err := rwkit.Write("out.json.gz", map[string]any{"a": 1})
//	v, err := rwkit.Read("out.json.gz")
package rwkit

import "iter"

// Codec reads and writes one payload format on top of the stream opener.
// Implementations are registered per Format with Register.
type Codec interface {
	// Read reads path and returns the decoded value.
	// Line-oriented codecs return a batch reader when a chunk size is set.
	Read(path string, opts ...Option) (any, error)

	// Write encodes v and writes it to path.
	// Returns an error wrapping ErrInvalidType if v has the wrong shape.
	Write(path string, v any, opts ...Option) error
}

// RecordWriter writes framed records (byte slices) to an underlying writer.
// Implementations handle record delimiting.
type RecordWriter interface {
	// Write writes a single record.
	// The record should not contain the delimiter (e.g., no trailing newline for JSON Lines).
	// Implementations may buffer writes; call Flush to ensure data is written.
	Write(data []byte) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close flushes any remaining data and closes the writer.
	// After Close, Write and Flush return errors.
	Close() error
}

// RecordReader reads framed records from an underlying reader.
type RecordReader interface {
	// Read reads the next record.
	// Returns io.EOF when no more records are available.
	Read() ([]byte, error)

	// Close releases any resources held by the reader.
	Close() error
}

// BatchReader yields records in fixed-size batches from a single pass over a file.
// The line-oriented codecs return one when a chunk size is set.
type BatchReader[T any] interface {
	// Next returns the next batch, or io.EOF after the last one.
	Next() ([]T, error)

	// All iterates over the remaining batches.
	All() iter.Seq2[[]T, error]

	// Close releases the file. Exhausting the reader also releases it.
	Close() error
}

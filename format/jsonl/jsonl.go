// Package jsonl reads and writes JSON Lines (one JSON value per line) through
// the rwkit stream opener.
//
// Importing the package registers a codec for rwkit.FormatJSONL.
package jsonl

import (
	"fmt"
	"io"
	"reflect"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/internal/chunk"
	"github.com/grokify/rwkit/internal/jsonenc"
	"github.com/grokify/rwkit/stream"
)

func init() {
	rwkit.Register(rwkit.FormatJSONL, codec{})
}

// Reader yields batches of decoded values from a single pass over a file.
type Reader = chunk.Reader[any]

// Read reads every line of path as a JSON value. Blank lines are skipped.
func Read(path string, opts ...rwkit.Option) ([]any, error) {
	r, err := NewReader(path, 1, opts...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	values := []any{}
	for batch, err := range r.All() {
		if err != nil {
			return nil, err
		}
		values = append(values, batch...)
	}
	return values, nil
}

// NewReader opens path for lazy reading in batches of chunkSize values.
func NewReader(path string, chunkSize int, opts ...rwkit.Option) (*Reader, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: chunk size must be 1 or greater, got %d", rwkit.ErrInvalidArgument, chunkSize)
	}
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeRead)
	if err := mode.RequirePrimary("r"); err != nil {
		return nil, err
	}

	h, err := stream.Open(path, config.StreamOptions(mode)...)
	if err != nil {
		return nil, err
	}
	records := NewRecordReader(h)

	line := 0
	next := func() (any, error) {
		data, err := records.Read()
		if err != nil {
			return nil, err
		}
		line++
		v, err := jsonenc.Decode(data, config.LenientJSON)
		if err != nil {
			return nil, jsonenc.Error(fmt.Sprintf("%s:%d", path, line), err)
		}
		return v, nil
	}
	return chunk.NewReader(chunkSize, next, records)
}

// Write writes v to path as JSON Lines. A slice or array is written one
// element per line, any other value as a single line. Modes w and x are accepted.
func Write(path string, v any, opts ...rwkit.Option) error {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeWrite)
	if err := mode.RequirePrimary("wx"); err != nil {
		return err
	}

	content, err := Encode(v)
	if err != nil {
		return err
	}

	config.Log().Debug("writing json lines", "path", path, "bytes", len(content))

	return stream.Use(path, func(h *stream.Handle) error {
		return h.WriteAll(content)
	}, config.StreamOptions(mode)...)
}

// Encode renders v as JSON Lines, each line terminated by "\n".
func Encode(v any) ([]byte, error) {
	buf := &bufferCloser{}
	w := NewRecordWriter(buf)

	items := []any{v}
	if rv := reflect.ValueOf(v); rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if _, isBytes := v.([]byte); !isBytes {
			items = make([]any, rv.Len())
			for i := range items {
				items[i] = rv.Index(i).Interface()
			}
		}
	}

	for _, item := range items {
		data, err := jsonenc.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", rwkit.ErrInvalidType, err)
		}
		if err := w.WriteJSON(data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.data, nil
}

type bufferCloser struct {
	data []byte
}

func (b *bufferCloser) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bufferCloser) Close() error { return nil }

var _ io.WriteCloser = (*bufferCloser)(nil)

type codec struct{}

// Read returns a []any, or a *Reader when a chunk size is set.
func (codec) Read(path string, opts ...rwkit.Option) (any, error) {
	config := rwkit.ApplyOptions(opts...)
	if config.Chunked() {
		return NewReader(path, config.ChunkSize, opts...)
	}
	return Read(path, opts...)
}

func (codec) Write(path string, v any, opts ...rwkit.Option) error {
	return Write(path, v, opts...)
}

// Package json reads and writes JSON documents through the rwkit stream opener.
//
// Importing the package registers a codec for rwkit.FormatJSON. With
// rwkit.WithLines the codec reads and writes JSON Lines instead.
package json

import (
	"fmt"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/format/jsonl"
	"github.com/grokify/rwkit/internal/jsonenc"
	"github.com/grokify/rwkit/stream"
)

func init() {
	rwkit.Register(rwkit.FormatJSON, codec{})
}

// Read reads the JSON document at path. Objects decode to map[string]any,
// arrays to []any, integral numbers to int and other numbers to float64.
func Read(path string, opts ...rwkit.Option) (any, error) {
	data, err := readAll(path, opts...)
	if err != nil {
		return nil, err
	}
	v, err := jsonenc.Decode(data, rwkit.ApplyOptions(opts...).LenientJSON)
	if err != nil {
		return nil, jsonenc.Error(path, err)
	}
	return v, nil
}

// ReadInto decodes the JSON document at path into v.
func ReadInto(path string, v any, opts ...rwkit.Option) error {
	data, err := readAll(path, opts...)
	if err != nil {
		return err
	}
	if err := jsonenc.DecodeInto(data, v, rwkit.ApplyOptions(opts...).LenientJSON); err != nil {
		return jsonenc.Error(path, err)
	}
	return nil
}

func readAll(path string, opts ...rwkit.Option) ([]byte, error) {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeRead)
	if err := mode.RequirePrimary("r"); err != nil {
		return nil, err
	}

	var data []byte
	err := stream.Use(path, func(h *stream.Handle) error {
		var err error
		data, err = h.ReadAll()
		return err
	}, config.StreamOptions(mode)...)
	return data, err
}

// Write writes v to path as compact JSON followed by a newline.
// Modes w and x are accepted.
func Write(path string, v any, opts ...rwkit.Option) error {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeWrite)
	if err := mode.RequirePrimary("wx"); err != nil {
		return err
	}

	data, err := jsonenc.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", rwkit.ErrInvalidType, err)
	}
	data = append(data, '\n')

	config.Log().Debug("writing json", "path", path, "bytes", len(data))

	return stream.Use(path, func(h *stream.Handle) error {
		return h.WriteAll(data)
	}, config.StreamOptions(mode)...)
}

type codec struct{}

// Read returns the decoded document. With rwkit.WithLines it returns a []any,
// or a batch reader when a chunk size is also set.
func (codec) Read(path string, opts ...rwkit.Option) (any, error) {
	config := rwkit.ApplyOptions(opts...)
	if config.Chunked() && !config.Lines {
		return nil, fmt.Errorf("%w: chunk size is only valid with lines", rwkit.ErrInvalidArgument)
	}
	if config.Lines {
		if config.Chunked() {
			return jsonl.NewReader(path, config.ChunkSize, opts...)
		}
		return jsonl.Read(path, opts...)
	}
	return Read(path, opts...)
}

func (codec) Write(path string, v any, opts ...rwkit.Option) error {
	if rwkit.ApplyOptions(opts...).Lines {
		return jsonl.Write(path, v, opts...)
	}
	return Write(path, v, opts...)
}

package text

import (
	"fmt"

	"github.com/grokify/rwkit"
)

func init() {
	rwkit.Register(rwkit.FormatText, codec{})
	rwkit.Register(rwkit.FormatLines, codec{lines: true})
}

// codec serves FormatText and FormatLines. The text codec switches to
// lines when rwkit.WithLines is given.
type codec struct {
	lines bool
}

// Read returns a string, a []string, or a *LineReader when a chunk size is set.
func (c codec) Read(path string, opts ...rwkit.Option) (any, error) {
	config := rwkit.ApplyOptions(opts...)
	lines := c.lines || config.Lines

	if config.Chunked() && !lines {
		return nil, fmt.Errorf("%w: chunk size requires line-oriented reading", rwkit.ErrInvalidArgument)
	}
	if !lines {
		return ReadText(path, opts...)
	}
	if config.Chunked() {
		return NewLineReader(path, config.ChunkSize, opts...)
	}
	return ReadLines(path, opts...)
}

func (c codec) Write(path string, v any, opts ...rwkit.Option) error {
	if c.lines || rwkit.ApplyOptions(opts...).Lines {
		return writeLinesValue(path, v, opts...)
	}
	return Write(path, v, opts...)
}

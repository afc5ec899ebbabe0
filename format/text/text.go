// Package text reads and writes plain text and newline-delimited lines
// through the rwkit stream opener.
//
// Importing the package registers codecs for rwkit.FormatText and
// rwkit.FormatLines.
package text

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/internal/chunk"
	"github.com/grokify/rwkit/stream"
)

// LineReader yields batches of lines from a single pass over a file.
type LineReader = chunk.Reader[string]

// ReadText reads the whole file as a string.
func ReadText(path string, opts ...rwkit.Option) (string, error) {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeRead)
	if err := mode.RequirePrimary("r"); err != nil {
		return "", err
	}

	var content []byte
	err := stream.Use(path, func(h *stream.Handle) error {
		var err error
		content, err = h.ReadAll()
		return err
	}, config.StreamOptions(mode)...)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ReadLines reads the file split on "\n". A final newline does not produce
// a trailing empty line, and an empty file yields no lines.
func ReadLines(path string, opts ...rwkit.Option) ([]string, error) {
	content, err := ReadText(path, opts...)
	if err != nil {
		return nil, err
	}
	return SplitLines(content), nil
}

// SplitLines splits s on "\n", dropping the single empty element left by a
// trailing newline.
func SplitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NewLineReader opens path for lazy reading in batches of chunkSize lines.
// Concatenating all batches gives the same lines as ReadLines.
func NewLineReader(path string, chunkSize int, opts ...rwkit.Option) (*LineReader, error) {
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
	return chunk.NewReader(chunkSize, lineSource(bufio.NewReader(h)), h)
}

// lineSource returns lines without their "\n". A trailing newline ends the
// last line rather than starting an empty one.
func lineSource(br *bufio.Reader) chunk.NextFunc[string] {
	return func() (string, error) {
		line, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", io.EOF
			}
			return line, nil
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(line, "\n"), nil
	}
}

// WriteText writes text as is. Modes starting with w, x and a are accepted.
func WriteText(path string, text string, opts ...rwkit.Option) error {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeWrite)
	if err := mode.RequirePrimary("wxa"); err != nil {
		return err
	}

	config.Log().Debug("writing text", "path", path, "bytes", len(text))

	return stream.Use(path, func(h *stream.Handle) error {
		return h.WriteAll([]byte(text))
	}, config.StreamOptions(mode)...)
}

// WriteLines writes each line followed by "\n".
func WriteLines(path string, lines []string, opts ...rwkit.Option) error {
	return WriteText(path, strings.Join(lines, "\n")+"\n", opts...)
}

// Write writes a string as text, or a []string or []any of strings as lines.
// Other values return ErrInvalidType naming the offending types.
func Write(path string, v any, opts ...rwkit.Option) error {
	switch val := v.(type) {
	case string:
		return WriteText(path, val, opts...)
	case []string:
		return WriteLines(path, val, opts...)
	case []any:
		lines, err := stringList(val)
		if err != nil {
			return err
		}
		return WriteLines(path, lines, opts...)
	default:
		return fmt.Errorf("%w: text must be a string or list of strings, got %T", rwkit.ErrInvalidType, v)
	}
}

// writeLinesValue is Write for the lines codec, where a single string is one line.
func writeLinesValue(path string, v any, opts ...rwkit.Option) error {
	if s, ok := v.(string); ok {
		return WriteLines(path, []string{s}, opts...)
	}
	return Write(path, v, opts...)
}

func stringList(items []any) ([]string, error) {
	lines := make([]string, 0, len(items))
	bad := map[string]bool{}
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			bad[fmt.Sprintf("%T", item)] = true
			continue
		}
		lines = append(lines, s)
	}
	if len(bad) > 0 {
		names := make([]string, 0, len(bad))
		for name := range bad {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: lines must be a string or list of strings, got list with %s",
			rwkit.ErrInvalidType, strings.Join(names, ", "))
	}
	return lines, nil
}

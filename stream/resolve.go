package stream

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/grokify/rwkit"
)

// request is an open request after validation and inference.
type request struct {
	path        string
	mode        rwkit.Mode
	compression rwkit.Compression
	level       int
	logger      *slog.Logger
}

// resolve validates the request and resolves inferred compression.
// Checks run in a fixed order: directory, existence for reads, compression,
// mode, level.
func resolve(path string, config *rwkit.Config) (*request, error) {
	mode := config.ModeOr(rwkit.ModeRead)

	info, statErr := os.Stat(path)
	if statErr == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: must be a file, not a directory: %q", rwkit.ErrIsDirectory, path)
	}
	if mode.IsRead() && (statErr != nil || !info.Mode().IsRegular()) {
		return nil, fmt.Errorf("%w: %w: %q", rwkit.ErrNotFound, fs.ErrNotExist, path)
	}

	compression := config.CompressionOr(rwkit.CompressionNone)
	if !compression.Valid() {
		return nil, fmt.Errorf("%w: unsupported compression %q, valid compressions are %v",
			rwkit.ErrInvalidArgument, string(compression), rwkit.SupportedCompressions())
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	if config.Level < 0 {
		return nil, fmt.Errorf("%w: compression level must not be negative, got %d",
			rwkit.ErrInvalidArgument, config.Level)
	}

	level := config.Level
	switch compression {
	case rwkit.CompressionInfer:
		inferred, sub := rwkit.InferCompression(path)
		compression = inferred
		if compression == rwkit.CompressionTar {
			if sub == "" {
				level = 0
			} else if mode.Bare() && !mode.IsAppend() {
				mode = mode.WithSubFormat(sub)
			}
		}
	case rwkit.CompressionTar:
		if mode.Bare() {
			level = 0
		}
	}
	if mode.IsRead() {
		level = 0
	}

	if mode.SubFormat() != "" && compression != rwkit.CompressionTar {
		return nil, fmt.Errorf("%w: mode %q carries a tar sub-format but compression is %s",
			rwkit.ErrInvalidArgument, string(mode), compression)
	}

	return &request{
		path:        path,
		mode:        mode,
		compression: compression,
		level:       level,
		logger:      config.Log(),
	}, nil
}

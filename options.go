package rwkit

import (
	"log/slog"

	"github.com/grokify/mogo/log/slogutil"
)

// Option configures an open, read or write operation.
type Option func(*Config)

// Config holds the settings shared by the stream opener, the codecs and the
// format dispatcher. Each operation uses the subset that applies to it.
type Config struct {
	// Mode is the file access mode. Empty means the operation's default
	// ("r" for reads, "w" for writes).
	Mode Mode

	// Compression selects the compression. Empty means CompressionNone for
	// the stream opener and CompressionInfer for the codecs.
	Compression Compression

	// Level is the compression level. 0 means the backend's default.
	// It is ignored in read mode and for bare tar archives.
	Level int

	// Lines selects line-oriented reading and writing for text and JSON.
	Lines bool

	// ChunkSize, when set, makes line-oriented reads return a lazy batch
	// reader yielding ChunkSize records at a time.
	ChunkSize int

	// chunkSizeSet distinguishes an explicit zero chunk size from no chunking.
	chunkSizeSet bool

	// Format overrides format inference in the dispatcher.
	Format Format

	// LenientJSON accepts JSON with comments and trailing commas.
	LenientJSON bool

	// Logger receives debug output about resolution and I/O.
	// If nil, a null logger is used.
	Logger *slog.Logger
}

// WithMode sets the file access mode, e.g. "r", "w", "x", "a" or "w:gz".
func WithMode(mode Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithCompression sets the compression.
func WithCompression(compression Compression) Option {
	return func(c *Config) {
		c.Compression = compression
	}
}

// WithLevel sets the compression level.
func WithLevel(level int) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithLines enables line-oriented reading and writing.
func WithLines() Option {
	return func(c *Config) {
		c.Lines = true
	}
}

// WithChunkSize enables lazy batched reading of size records per batch.
// Sizes below 1 are rejected when the read starts.
func WithChunkSize(size int) Option {
	return func(c *Config) {
		c.ChunkSize = size
		c.chunkSizeSet = true
	}
}

// WithFormat bypasses format inference in Read and Write.
func WithFormat(format Format) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithLenientJSON accepts HuJSON input (comments, trailing commas).
func WithLenientJSON() Option {
	return func(c *Config) {
		c.LenientJSON = true
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// ApplyOptions applies options to a new Config.
func ApplyOptions(opts ...Option) *Config {
	config := &Config{}
	for _, opt := range opts {
		if opt != nil {
			opt(config)
		}
	}
	return config
}

// Chunked reports whether a chunk size was requested, including invalid ones.
func (c *Config) Chunked() bool {
	return c.chunkSizeSet
}

// ModeOr returns the configured mode, or def if none was set.
func (c *Config) ModeOr(def Mode) Mode {
	if c.Mode == "" {
		return def
	}
	return c.Mode
}

// CompressionOr returns the configured compression, or def if none was set.
func (c *Config) CompressionOr(def Compression) Compression {
	if c.Compression == CompressionUnset {
		return def
	}
	return c.Compression
}

// Log returns the configured logger or a null logger if none is set.
func (c *Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slogutil.Null()
}

// Options returns options reproducing c, so a codec can forward its
// resolved settings to the stream opener.
func (c *Config) Options() []Option {
	snapshot := *c
	return []Option{func(dst *Config) { *dst = snapshot }}
}

// StreamOptions returns options for stream.Open with mode applied and the
// compression defaulting to CompressionInfer, as the codecs expect.
func (c *Config) StreamOptions(mode Mode) []Option {
	return append(c.Options(),
		WithMode(mode),
		WithCompression(c.CompressionOr(CompressionInfer)))
}

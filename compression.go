package rwkit

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Compression names a compression or container format.
type Compression string

const (
	// CompressionUnset means no compression was requested explicitly.
	// The stream opener treats it as CompressionNone, the codecs as CompressionInfer.
	CompressionUnset Compression = ""

	// CompressionNone reads and writes the file as is.
	CompressionNone Compression = "none"

	// CompressionInfer resolves the compression from the filename extension.
	CompressionInfer Compression = "infer"

	CompressionBzip2 Compression = "bz2"
	CompressionGzip  Compression = "gzip"
	CompressionTar   Compression = "tar"
	CompressionXz    Compression = "xz"
	CompressionZip   Compression = "zip"
	CompressionZstd  Compression = "zstd"
)

// String returns the string representation of the compression.
func (c Compression) String() string {
	if c == CompressionUnset {
		return string(CompressionNone)
	}
	return string(c)
}

// IsContainer returns true for archive formats that hold named members.
func (c Compression) IsContainer() bool {
	return c == CompressionTar || c == CompressionZip
}

// SupportedCompressions returns the concrete compressions in a stable order.
func SupportedCompressions() []Compression {
	return []Compression{
		CompressionBzip2,
		CompressionGzip,
		CompressionTar,
		CompressionXz,
		CompressionZip,
		CompressionZstd,
	}
}

// Valid reports whether c is a supported compression, "none", "infer" or unset.
func (c Compression) Valid() bool {
	switch c {
	case CompressionUnset, CompressionNone, CompressionInfer:
		return true
	}
	for _, s := range SupportedCompressions() {
		if c == s {
			return true
		}
	}
	return false
}

// ParseCompression converts a user supplied string into a Compression.
// Unsupported values return ErrInvalidArgument naming the value.
func ParseCompression(s string) (Compression, error) {
	c := Compression(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unsupported compression %q, valid compressions are %v",
			ErrInvalidArgument, s, validCompressionNames())
	}
	return c, nil
}

func validCompressionNames() []string {
	names := []string{string(CompressionNone), string(CompressionInfer)}
	for _, c := range SupportedCompressions() {
		names = append(names, string(c))
	}
	return names
}

// extensionRule maps a filename suffix to a compression and an optional tar sub-format.
type extensionRule struct {
	suffix      string
	compression Compression
	subFormat   string
}

// Order matters: every tar rule precedes the single-filter rules it would
// otherwise collide with.
var extensionRules = []extensionRule{
	{".tar", CompressionTar, ""},
	{".tar.bz2", CompressionTar, SubFormatBzip2},
	{".tar.gz", CompressionTar, SubFormatGzip},
	{".tgz", CompressionTar, SubFormatGzip},
	{".tar.xz", CompressionTar, SubFormatXz},
	{".bz2", CompressionBzip2, ""},
	{".gz", CompressionGzip, ""},
	{".xz", CompressionXz, ""},
	{".zip", CompressionZip, ""},
	{".zst", CompressionZstd, ""},
}

// InferCompression resolves the compression implied by the lowercase base
// name of path. For tar archives the returned sub-format is one of
// SubFormatBzip2, SubFormatGzip or SubFormatXz, or empty for a bare tar.
// Names without a known suffix resolve to CompressionNone.
func InferCompression(path string) (Compression, string) {
	name := strings.ToLower(filepath.Base(path))
	for _, rule := range extensionRules {
		if strings.HasSuffix(name, rule.suffix) {
			return rule.compression, rule.subFormat
		}
	}
	return CompressionNone, ""
}

// CompressionExtensions returns every filename suffix that implies a compression.
func CompressionExtensions() []string {
	exts := make([]string, 0, len(extensionRules))
	for _, rule := range extensionRules {
		exts = append(exts, rule.suffix)
	}
	return exts
}

//go:build !nozstd

package stream

import (
	"io"

	"github.com/grokify/rwkit/compress/zstd"
)

// HaveZstd reports whether zstd support is compiled in.
const HaveZstd = true

var zstdFilter = filter{
	newReader: func(r io.ReadCloser) (io.ReadCloser, error) {
		return zstd.NewReader(r)
	},
	newWriter: func(w io.WriteCloser, level int) (io.WriteCloser, error) {
		return zstd.NewWriterLevel(w, levelOr(level, zstd.DefaultLevel))
	},
}

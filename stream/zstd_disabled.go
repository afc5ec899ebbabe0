//go:build nozstd

package stream

// HaveZstd reports whether zstd support is compiled in.
const HaveZstd = false

// zstdFilter is never reached; openZstd checks HaveZstd first.
var zstdFilter = filter{}

package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/compress/bzip2"
	"github.com/grokify/rwkit/compress/gzip"
	"github.com/grokify/rwkit/compress/xz"
)

// filter builds the reader and writer for a streaming compression.
// Level 0 selects the backend default.
type filter struct {
	newReader func(r io.ReadCloser) (io.ReadCloser, error)
	newWriter func(w io.WriteCloser, level int) (io.WriteCloser, error)
}

var (
	gzipFilter = filter{
		newReader: func(r io.ReadCloser) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		},
		newWriter: func(w io.WriteCloser, level int) (io.WriteCloser, error) {
			return gzip.NewWriterLevel(w, levelOr(level, gzip.DefaultCompression))
		},
	}
	bzip2Filter = filter{
		newReader: func(r io.ReadCloser) (io.ReadCloser, error) {
			return bzip2.NewReader(r)
		},
		newWriter: func(w io.WriteCloser, level int) (io.WriteCloser, error) {
			return bzip2.NewWriterLevel(w, levelOr(level, bzip2.DefaultCompression))
		},
	}
	xzFilter = filter{
		newReader: func(r io.ReadCloser) (io.ReadCloser, error) {
			return xz.NewReader(r)
		},
		newWriter: func(w io.WriteCloser, level int) (io.WriteCloser, error) {
			return xz.NewWriterLevel(w, levelOr(level, xz.DefaultPreset))
		},
	}
)

// tarFilters maps tar sub-formats to their compression filter.
var tarFilters = map[string]filter{
	rwkit.SubFormatGzip:  gzipFilter,
	rwkit.SubFormatBzip2: bzip2Filter,
	rwkit.SubFormatXz:    xzFilter,
}

func levelOr(level, def int) int {
	if level == 0 {
		return def
	}
	return level
}

func openNone(req *request) (*Handle, error) {
	f, err := openFile(req.path, req.mode)
	if err != nil {
		return nil, err
	}
	h := newHandle(req)
	if req.mode.IsRead() {
		h.r = f
	} else {
		h.w = f
	}
	h.closers = []io.Closer{f}
	return h, nil
}

func openGzip(req *request) (*Handle, error)  { return openFilter(req, gzipFilter) }
func openBzip2(req *request) (*Handle, error) { return openFilter(req, bzip2Filter) }
func openXz(req *request) (*Handle, error)    { return openFilter(req, xzFilter) }

func openZstd(req *request) (*Handle, error) {
	if !HaveZstd {
		return nil, fmt.Errorf("%w: zstd support was built out with the nozstd tag, rebuild without it to open %q",
			rwkit.ErrMissingDependency, req.path)
	}
	return openFilter(req, zstdFilter)
}

// openFilter opens a streaming compression. Appending writes a new
// compressed member after the existing ones. A zero-byte file reads as
// empty content for every filter.
func openFilter(req *request, flt filter) (*Handle, error) {
	f, err := openFile(req.path, req.mode)
	if err != nil {
		return nil, err
	}
	h := newHandle(req)
	h.closers = []io.Closer{f}

	if req.mode.IsRead() {
		info, err := f.Stat()
		if err != nil {
			return nil, h.abort(fmt.Errorf("stat %q: %w", req.path, err))
		}
		if info.Size() == 0 {
			h.r = bytes.NewReader(nil)
			return h, nil
		}
		r, err := flt.newReader(io.NopCloser(f))
		if err != nil {
			return nil, h.abort(fmt.Errorf("read %s stream %q: %w", req.compression, req.path, err))
		}
		h.r = r
		h.closers = []io.Closer{r, f}
		return h, nil
	}

	w, err := flt.newWriter(nopWriteCloser{f}, req.level)
	if err != nil {
		return nil, h.abort(fmt.Errorf("%w: %w", rwkit.ErrInvalidArgument, err))
	}
	h.w = w
	h.closers = []io.Closer{w, f}
	return h, nil
}

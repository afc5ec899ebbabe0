package gzip

import (
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// Reader decompresses a gzip file and owns the file's closer. Members
// written by successive appends read back as one stream.
type Reader struct {
	mu     sync.Mutex
	gr     *gzip.Reader
	src    io.Closer
	closed bool
}

// NewReader reads the first member header from r. A file that is not gzip
// fails here rather than on the first Read.
func NewReader(r io.ReadCloser) (*Reader, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	gr.Multistream(true)
	return &Reader{gr: gr, src: r}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.ErrClosedPipe
	}
	return r.gr.Read(p)
}

// Close releases the decompressor, then closes the source. Repeated calls
// return nil.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return errors.Join(r.gr.Close(), r.src.Close())
}

var _ io.ReadCloser = (*Reader)(nil)

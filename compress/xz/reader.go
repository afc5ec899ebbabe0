package xz

import (
	"bufio"
	"io"
	"sync"

	"github.com/ulikunitz/xz"
)

// Reader wraps an io.ReadCloser with xz decompression.
// Concatenated streams are decoded as one stream.
type Reader struct {
	xr     *xz.Reader
	closer io.Closer
	closed bool
	mu     sync.Mutex
}

// NewReader creates a new xz reader. The stream header is read immediately,
// so data that is not xz fails here.
func NewReader(r io.ReadCloser) (*Reader, error) {
	xr, err := xz.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	return &Reader{
		xr:     xr,
		closer: r,
	}, nil
}

// Read reads decompressed data from the underlying reader.
func (r *Reader) Read(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, io.ErrClosedPipe
	}

	return r.xr.Read(p)
}

// Close closes the underlying reader.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	return r.closer.Close()
}

var _ io.ReadCloser = (*Reader)(nil)

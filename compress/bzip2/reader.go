package bzip2

import (
	"bufio"
	"compress/bzip2"
	"io"
	"sync"
)

// Reader wraps an io.ReadCloser with bzip2 decompression.
// Concatenated streams, as produced by appending, are read as one stream.
type Reader struct {
	br     io.Reader
	closer io.Closer
	closed bool
	mu     sync.Mutex
}

// NewReader creates a new bzip2 reader that decompresses data from the underlying reader.
// A stream that does not start with the bzip2 magic fails on the first Read.
func NewReader(r io.ReadCloser) (*Reader, error) {
	return &Reader{
		br:     bzip2.NewReader(bufio.NewReader(r)),
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

	return r.br.Read(p)
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

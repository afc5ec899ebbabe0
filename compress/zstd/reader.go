package zstd

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Reader decompresses a zstd file and owns the file's closer. Frames
// written by successive appends decode as one stream.
type Reader struct {
	mu     sync.Mutex
	dec    *zstd.Decoder
	src    io.Closer
	closed bool
}

// NewReader decodes r on a single goroutine.
func NewReader(r io.ReadCloser) (*Reader, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return &Reader{dec: dec, src: r}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.ErrClosedPipe
	}
	return r.dec.Read(p)
}

// Close stops the decoder, then closes the source. Repeated calls return nil.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.dec.Close()
	return r.src.Close()
}

var _ io.ReadCloser = (*Reader)(nil)

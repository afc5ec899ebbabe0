// Package zip holds single-member zip archives for rwkit.
//
// Members are deflated with github.com/klauspost/compress/flate, registered
// on the standard archive/zip writer.
package zip

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// DataMember is the name of the single entry written to an archive.
const DataMember = "data"

// ErrMemberCount is returned when an archive does not hold exactly one member.
var ErrMemberCount = errors.New("zip archive must contain exactly one member")

// ErrInvalid is returned when the file fails structural validation.
var ErrInvalid = errors.New("not a valid zip file")

// Compression levels accepted by NewWriter.
const (
	DefaultCompression = flate.DefaultCompression
	BestSpeed          = flate.BestSpeed
	BestCompression    = flate.BestCompression
)

// Reader is an archive opened for reading its single member.
type Reader struct {
	zr *zip.Reader
}

// NewReader reads the central directory of the archive in ra.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &Reader{zr: zr}, nil
}

// Members returns the member names in directory order.
func (r *Reader) Members() []string {
	names := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// OpenSingle opens the only member of the archive.
// Archives with zero or several members return ErrMemberCount.
func (r *Reader) OpenSingle() (io.ReadCloser, error) {
	if n := len(r.zr.File); n != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrMemberCount, n)
	}
	return r.zr.File[0].Open()
}

// Close releases the archive. The underlying file is owned by the caller.
func (r *Reader) Close() error {
	return nil
}

// Writer writes members to a zip archive.
// Close writes the central directory but does not close the underlying writer.
type Writer struct {
	zw     *zip.Writer
	closed bool
	mu     sync.Mutex
}

// NewWriter creates a zip writer on w deflating at level.
// Level 0 selects DefaultCompression; otherwise levels run from 1 to 9.
func NewWriter(w io.Writer, level int) (*Writer, error) {
	if level == 0 {
		level = DefaultCompression
	}
	if level != DefaultCompression && (level < BestSpeed || level > BestCompression) {
		return nil, fmt.Errorf("zip level %d: must be between %d and %d", level, BestSpeed, BestCompression)
	}
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	return &Writer{zw: zw}, nil
}

// Create adds a deflated member and returns a writer for its content.
// The member is complete when the next member is created or on Close.
func (w *Writer) Create(name string) (io.Writer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, io.ErrClosedPipe
	}
	return w.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
}

// Close writes the central directory.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.zw.Close()
}

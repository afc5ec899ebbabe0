// Package tar holds single-member tar archives for rwkit.
//
// Reading expects exactly one member. Writing adds entries whose size must
// be known before the header is written, so callers hand over complete
// entries with AddEntry.
package tar

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// DataMember is the name of the single entry written to an archive.
const DataMember = "data"

var (
	// ErrMemberCount is returned when an archive does not hold exactly one member.
	ErrMemberCount = errors.New("tar archive must contain exactly one member")

	// ErrInvalid is returned when a stream is not a tar archive.
	ErrInvalid = errors.New("not a valid tar stream")
)

// countingReader tracks how many bytes were consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// CountMembers scans the archive and returns the number of members.
// An empty or malformed stream returns ErrInvalid.
func CountMembers(r io.Reader) (int, error) {
	cr := &countingReader{r: r}
	tr := tar.NewReader(cr)

	count := 0
	for {
		_, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		count++
	}
	if cr.n == 0 {
		return 0, fmt.Errorf("%w: empty file", ErrInvalid)
	}
	return count, nil
}

// Member is the single member of an archive opened for reading.
type Member struct {
	Header *tar.Header
	r      io.Reader
}

// Read reads the member content.
func (m *Member) Read(p []byte) (int, error) {
	return m.r.Read(p)
}

// OpenMember positions r on the first member and returns it.
func OpenMember(r io.Reader) (*Member, error) {
	tr := tar.NewReader(r)
	hdr, err := tr.Next()
	if err == io.EOF {
		return nil, ErrMemberCount
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &Member{Header: hdr, r: tr}, nil
}

// Writer writes entries to a tar archive.
// Close writes the trailer but does not close the underlying writer.
type Writer struct {
	tw     *tar.Writer
	closed bool
	mu     sync.Mutex
}

// NewWriter creates a tar writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{tw: tar.NewWriter(w)}
}

// AddEntry writes a regular file entry of size bytes read from r.
func (w *Writer) AddEntry(name string, size int64, r io.Reader) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return io.ErrClosedPipe
	}

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     size,
		Mode:     0o644,
		ModTime:  time.Now(),
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("write header %q: %w", name, err)
	}
	if _, err := io.CopyN(w.tw, r, size); err != nil {
		return fmt.Errorf("write entry %q: %w", name, err)
	}
	return nil
}

// Close writes the archive trailer.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.tw.Close()
}

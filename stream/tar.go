package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mholt/archives"

	"github.com/grokify/rwkit"
	tarc "github.com/grokify/rwkit/container/tar"
)

// tarContainer adapts a tar writer to Container. Read handles carry one
// without a writer so the archive still closes in order.
type tarContainer struct {
	tw     *tarc.Writer
	filter io.Closer
}

func (c *tarContainer) AddEntry(entry *Entry, r io.Reader) error {
	if c.tw == nil {
		return fmt.Errorf("%w: tar archive is open for reading", rwkit.ErrInvalidArgument)
	}
	return c.tw.AddEntry(entry.Name, entry.Size, r)
}

func (c *tarContainer) Close() error {
	if c.tw == nil {
		return nil
	}
	return errors.Join(c.tw.Close(), c.filter.Close())
}

func openTar(req *request) (*Handle, error) {
	if req.mode.IsAppend() {
		return nil, fmt.Errorf("%w: append is not supported for tar archives: %q",
			rwkit.ErrInvalidArgument, req.path)
	}

	f, err := openFile(req.path, req.mode)
	if err != nil {
		return nil, err
	}
	h := newHandle(req)
	h.closers = []io.Closer{f}

	if req.mode.IsRead() {
		if err := openTarRead(h, f, req.mode.SubFormat()); err != nil {
			return nil, h.abort(err)
		}
		return h, nil
	}

	var fw io.WriteCloser = nopWriteCloser{f}
	if sub := req.mode.SubFormat(); sub != "" {
		fw, err = tarFilters[sub].newWriter(fw, req.level)
		if err != nil {
			return nil, h.abort(fmt.Errorf("%w: %w", rwkit.ErrInvalidArgument, err))
		}
	}

	c := &tarContainer{tw: tarc.NewWriter(fw), filter: fw}
	h.kind = KindPendingEntry
	h.entry = &Entry{Name: tarc.DataMember}
	h.container = c
	h.closers = []io.Closer{c, f}
	return h, nil
}

// openTarRead counts the members in one pass, rewinds the same file and
// positions the stream on the single member. A bare read mode detects the
// compression filter from the content.
func openTarRead(h *Handle, f *os.File, sub string) error {
	if sub == "" {
		format, _, err := archives.Identify(context.Background(), "", f)
		switch {
		case err == nil:
			sub = tarSubFormat(format)
		case !errors.Is(err, archives.NoMatch):
			return fmt.Errorf("%w: %q: %w", rwkit.ErrReadError, h.path, err)
		}
	}

	count, err := withTarFilter(f, sub, func(r io.Reader) (int, error) {
		return tarc.CountMembers(r)
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %w", rwkit.ErrReadError, h.path, err)
	}
	if count != 1 {
		return fmt.Errorf("%w: tar archive %q must contain exactly one member, found %d",
			rwkit.ErrInvalidArgument, h.path, count)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %q: %w", h.path, err)
	}
	fr, err := tarFilterReader(f, sub)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", rwkit.ErrReadError, h.path, err)
	}
	member, err := tarc.OpenMember(fr)
	if err != nil {
		_ = fr.Close()
		return fmt.Errorf("%w: %q: %w", rwkit.ErrReadError, h.path, err)
	}

	c := &tarContainer{}
	h.r = member
	h.container = c
	h.closers = []io.Closer{fr, c, f}
	return nil
}

// tarSubFormat maps an identified compression to its tar sub-format, or ""
// for an uncompressed or unsupported stream.
func tarSubFormat(format archives.Format) string {
	if ca, ok := format.(archives.CompressedArchive); ok {
		format = ca.Compression
	}
	switch format.(type) {
	case archives.Gz:
		return "gz"
	case archives.Bz2:
		return "bz2"
	case archives.Xz:
		return "xz"
	}
	return ""
}

// withTarFilter rewinds f and runs fn over its decompressed content.
func withTarFilter(f *os.File, sub string, fn func(r io.Reader) (int, error)) (int, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	fr, err := tarFilterReader(f, sub)
	if err != nil {
		return 0, err
	}
	defer func() { _ = fr.Close() }()
	return fn(fr)
}

func tarFilterReader(f *os.File, sub string) (io.ReadCloser, error) {
	rc := io.NopCloser(f)
	if sub == "" {
		return rc, nil
	}
	return tarFilters[sub].newReader(rc)
}

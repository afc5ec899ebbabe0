package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/grokify/rwkit"
	zipc "github.com/grokify/rwkit/container/zip"
)

// zipContainer adapts a zip reader or writer to Container.
type zipContainer struct {
	zr *zipc.Reader
	zw *zipc.Writer
}

func (c *zipContainer) AddEntry(entry *Entry, r io.Reader) error {
	if c.zw == nil {
		return fmt.Errorf("%w: zip archive is open for reading", rwkit.ErrInvalidArgument)
	}
	w, err := c.zw.Create(entry.Name)
	if err != nil {
		return err
	}
	_, err = io.CopyN(w, r, entry.Size)
	return err
}

func (c *zipContainer) Close() error {
	if c.zw != nil {
		return c.zw.Close()
	}
	return c.zr.Close()
}

func openZip(req *request) (*Handle, error) {
	if req.mode.IsAppend() {
		return nil, fmt.Errorf("%w: append is not supported for zip archives: %q",
			rwkit.ErrInvalidArgument, req.path)
	}

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
		zr, err := zipc.NewReader(f, info.Size())
		if err != nil {
			return nil, h.abort(fmt.Errorf("%w: %q: %w", rwkit.ErrBadArchive, req.path, err))
		}
		member, err := zr.OpenSingle()
		if errors.Is(err, zipc.ErrMemberCount) {
			return nil, h.abort(fmt.Errorf("%w: %q: %w", rwkit.ErrInvalidArgument, req.path, err))
		}
		if err != nil {
			return nil, h.abort(fmt.Errorf("%w: %q: %w", rwkit.ErrBadArchive, req.path, err))
		}
		c := &zipContainer{zr: zr}
		h.r = member
		h.container = c
		h.closers = []io.Closer{member, c, f}
		return h, nil
	}

	zw, err := zipc.NewWriter(f, req.level)
	if err != nil {
		return nil, h.abort(fmt.Errorf("%w: %w", rwkit.ErrInvalidArgument, err))
	}
	w, err := zw.Create(zipc.DataMember)
	if err != nil {
		return nil, h.abort(err)
	}
	c := &zipContainer{zw: zw}
	h.w = w
	h.container = c
	h.closers = []io.Closer{c, f}
	return h, nil
}

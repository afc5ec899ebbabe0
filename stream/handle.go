package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/grokify/rwkit"
)

// Kind tags the variant held by a Handle.
type Kind int

const (
	// KindLive is a readable or writable byte stream.
	KindLive Kind = iota

	// KindPendingEntry is an archive entry descriptor that must be sized and
	// handed to Container.AddEntry before the handle is closed.
	KindPendingEntry
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindPendingEntry:
		return "pending-entry"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry describes an archive member that has not been written yet.
type Entry struct {
	Name string
	Size int64
}

// Container is an open archive holding the single logical entry.
// It is closed by Handle.Close after the stream and before the file.
type Container interface {
	// AddEntry writes entry with content read from r. Only entry.Size bytes are copied.
	AddEntry(entry *Entry, r io.Reader) error

	// Close finalizes the archive (tar trailer, zip central directory).
	Close() error
}

// Handle is one open logical stream. Close releases the stream, then the
// container, then the file. A Handle is not safe for concurrent use.
type Handle struct {
	path        string
	mode        rwkit.Mode
	compression rwkit.Compression
	level       int
	kind        Kind

	r         io.Reader
	w         io.Writer
	entry     *Entry
	container Container

	// closers run in order on Close.
	closers []io.Closer

	closed   bool
	closeErr error
	logger   *slog.Logger
}

func newHandle(req *request) *Handle {
	return &Handle{
		path:        req.path,
		mode:        req.mode,
		compression: req.compression,
		level:       req.level,
		logger:      req.logger,
	}
}

// Path returns the opened path.
func (h *Handle) Path() string { return h.path }

// Mode returns the resolved mode, including any inferred tar sub-format.
func (h *Handle) Mode() rwkit.Mode { return h.mode }

// Compression returns the resolved compression. It is never CompressionInfer.
func (h *Handle) Compression() rwkit.Compression { return h.compression }

// Level returns the effective compression level. 0 means the backend default.
func (h *Handle) Level() int { return h.level }

// Kind returns the variant held by the handle.
func (h *Handle) Kind() Kind { return h.kind }

// Binary reports whether the backend natively yields bytes rather than text.
func (h *Handle) Binary() bool {
	return h.compression != rwkit.CompressionNone && h.compression != rwkit.CompressionZstd
}

// Reader returns the decompressed stream, or nil if the handle is not readable.
func (h *Handle) Reader() io.Reader { return h.r }

// Writer returns the compressing stream, or nil unless the handle is a live writer.
func (h *Handle) Writer() io.Writer { return h.w }

// Entry returns the pending archive entry for tar writes, or nil.
func (h *Handle) Entry() *Entry { return h.entry }

// Container returns the open archive for tar and zip, or nil.
func (h *Handle) Container() Container { return h.container }

// Read reads from the decompressed stream.
func (h *Handle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, rwkit.ErrHandleClosed
	}
	if h.r == nil {
		return 0, fmt.Errorf("%w: %q is not open for reading", rwkit.ErrInvalidArgument, h.path)
	}
	return h.r.Read(p)
}

// Write writes to a live stream. Pending entries must be written with WriteAll
// or Container.AddEntry.
func (h *Handle) Write(p []byte) (int, error) {
	if h.closed {
		return 0, rwkit.ErrHandleClosed
	}
	if h.kind == KindPendingEntry {
		return 0, fmt.Errorf("%w: %q holds a pending %s entry, use WriteAll or AddEntry",
			rwkit.ErrInvalidArgument, h.path, h.compression)
	}
	if h.w == nil {
		return 0, fmt.Errorf("%w: %q is not open for writing", rwkit.ErrInvalidArgument, h.path)
	}
	return h.w.Write(p)
}

// ReadAll reads the remaining decompressed content.
func (h *Handle) ReadAll() ([]byte, error) {
	return io.ReadAll(h)
}

// WriteAll writes p as the whole content of a pending entry, or appends it
// to a live stream.
func (h *Handle) WriteAll(p []byte) error {
	if h.closed {
		return rwkit.ErrHandleClosed
	}
	if h.kind == KindPendingEntry {
		h.entry.Size = int64(len(p))
		return h.container.AddEntry(h.entry, bytes.NewReader(p))
	}
	_, err := h.Write(p)
	return err
}

// Close closes the stream, the container and the file, in that order.
// Close is idempotent; later calls return the first result.
func (h *Handle) Close() error {
	if h.closed {
		return h.closeErr
	}
	h.closed = true

	var errs []error
	for _, c := range h.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.closeErr = errors.Join(errs...)

	h.logger.Debug("closed stream",
		"path", h.path,
		"compression", h.compression.String(),
		"error", h.closeErr)

	return h.closeErr
}

// abort releases whatever was opened when setup fails part way.
func (h *Handle) abort(err error) error {
	_ = h.Close()
	return err
}

// Ensure Handle implements io.ReadWriteCloser
var _ io.ReadWriteCloser = (*Handle)(nil)

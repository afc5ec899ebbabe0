package stream

import (
	"fmt"
	"io"
	"os"

	"github.com/grokify/rwkit"
)

// FilePermissions is the permission used for files created by Open.
const FilePermissions = 0644

// openFile opens the path with flags matching the primary mode character.
func openFile(path string, mode rwkit.Mode) (*os.File, error) {
	var flag int
	switch mode.Primary() {
	case 'r':
		flag = os.O_RDONLY
	case 'w':
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'x':
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	case 'a':
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return nil, fmt.Errorf("%w: unrecognized mode %q", rwkit.ErrInvalidArgument, string(mode))
	}

	f, err := os.OpenFile(path, flag, FilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return f, nil
}

// nopWriteCloser shields the file from filter writers that close what they wrap.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// closerFunc adapts a function to io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

package rwkit

import "errors"

// Common errors returned by rwkit, the stream opener and the codecs.
var (
	// ErrIsDirectory is returned when a path names a directory instead of a file.
	ErrIsDirectory = errors.New("rwkit: is a directory")

	// ErrNotFound is returned when reading a path that does not exist.
	ErrNotFound = errors.New("rwkit: not found")

	// ErrInvalidArgument is returned for unsupported compressions, modes, levels,
	// chunk sizes and archive member counts.
	ErrInvalidArgument = errors.New("rwkit: invalid argument")

	// ErrBadArchive is returned when a zip file fails structural validation.
	ErrBadArchive = errors.New("rwkit: bad archive")

	// ErrReadError is returned when a tar file is not a valid tar stream.
	ErrReadError = errors.New("rwkit: tar read error")

	// ErrMissingDependency is returned when an optional codec or compression
	// was compiled out or never registered.
	ErrMissingDependency = errors.New("rwkit: missing dependency")

	// ErrInvalidType is returned when a writer is given a value of the wrong shape.
	ErrInvalidType = errors.New("rwkit: invalid type")

	// ErrHandleClosed is returned when using a stream handle after Close.
	ErrHandleClosed = errors.New("rwkit: handle closed")
)

// IsNotFound returns true if the error indicates a path was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDirectory returns true if the error indicates the path was a directory.
func IsDirectory(err error) bool {
	return errors.Is(err, ErrIsDirectory)
}

// IsInvalidArgument returns true if the error indicates an invalid argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsMissingDependency returns true if the error indicates a missing optional component.
func IsMissingDependency(err error) bool {
	return errors.Is(err, ErrMissingDependency)
}

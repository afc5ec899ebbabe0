package rwkit

import (
	"fmt"
	"sort"
	"sync"
)

var (
	codecsMu sync.RWMutex
	codecs   = make(map[Format]Codec)
)

// Register registers a codec under the given format.
// It is typically called from init() in codec packages.
//
// Register panics if:
//   - codec is nil
//   - a codec for the same format is already registered
//
// Example:
//
//	func init() {
//	    rwkit.Register(rwkit.FormatJSON, codec{})
//	}
func Register(format Format, codec Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()

	if codec == nil {
		panic("rwkit: Register codec is nil")
	}
	if _, dup := codecs[format]; dup {
		panic("rwkit: Register called twice for format " + string(format))
	}
	codecs[format] = codec
}

// Lookup returns the codec registered for format.
//
// Lookup returns ErrMissingDependency if no codec is registered, naming the
// package that provides it.
func Lookup(format Format) (Codec, error) {
	codecsMu.RLock()
	codec, ok := codecs[format]
	codecsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no codec registered for %s, %s",
			ErrMissingDependency, format, format.remedy())
	}
	return codec, nil
}

// Formats returns a sorted list of formats with a registered codec.
func Formats() []Format {
	codecsMu.RLock()
	defer codecsMu.RUnlock()

	formats := make([]Format, 0, len(codecs))
	for format := range codecs {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// IsRegistered returns true if a codec is registered for the format.
func IsRegistered(format Format) bool {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	_, ok := codecs[format]
	return ok
}

// Unregister removes a registered codec.
// This is primarily useful for testing.
// Returns true if the codec was registered, false otherwise.
func Unregister(format Format) bool {
	codecsMu.Lock()
	defer codecsMu.Unlock()

	if _, ok := codecs[format]; ok {
		delete(codecs, format)
		return true
	}
	return false
}

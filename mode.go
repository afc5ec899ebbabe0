package rwkit

import (
	"fmt"
	"strings"
)

// Mode is a file access mode: a primary character r, w, x or a, optionally
// followed by a tar sub-format such as ":gz".
type Mode string

const (
	ModeRead      Mode = "r"
	ModeWrite     Mode = "w"
	ModeExclusive Mode = "x"
	ModeAppend    Mode = "a"
)

// Tar sub-formats accepted after the primary mode character.
const (
	SubFormatBzip2 = "bz2"
	SubFormatGzip  = "gz"
	SubFormatXz    = "xz"
)

// Primary returns the primary mode character, or 0 for an empty mode.
func (m Mode) Primary() byte {
	if m == "" {
		return 0
	}
	return m[0]
}

// SubFormat returns the tar sub-format following the colon, if any.
func (m Mode) SubFormat() string {
	_, sub, _ := strings.Cut(string(m), ":")
	return sub
}

// Bare reports whether the mode is a single primary character.
func (m Mode) Bare() bool {
	return len(m) == 1
}

// IsRead reports whether the mode opens an existing file for reading.
func (m Mode) IsRead() bool { return m.Primary() == 'r' }

// IsAppend reports whether the mode extends an existing file.
func (m Mode) IsAppend() bool { return m.Primary() == 'a' }

// WithSubFormat returns the mode qualified with a tar sub-format.
func (m Mode) WithSubFormat(sub string) Mode {
	if sub == "" {
		return m
	}
	return Mode(string(m) + ":" + sub)
}

// Validate checks the primary character and the optional sub-format.
func (m Mode) Validate() error {
	switch m.Primary() {
	case 'r', 'w', 'x', 'a':
	default:
		return fmt.Errorf("%w: unrecognized mode %q, valid modes start with r, w, x or a",
			ErrInvalidArgument, string(m))
	}
	rest := string(m[1:])
	if rest == "" {
		return nil
	}
	sub, ok := strings.CutPrefix(rest, ":")
	if !ok {
		return fmt.Errorf("%w: unrecognized mode %q", ErrInvalidArgument, string(m))
	}
	switch sub {
	case SubFormatBzip2, SubFormatGzip, SubFormatXz:
		return nil
	}
	return fmt.Errorf("%w: unrecognized tar sub-format %q in mode %q, valid sub-formats are bz2, gz and xz",
		ErrInvalidArgument, sub, string(m))
}

// RequirePrimary returns ErrInvalidArgument unless the mode starts with one
// of the allowed primary characters.
func (m Mode) RequirePrimary(allowed string) error {
	if m.Primary() == 0 || !strings.ContainsRune(allowed, rune(m.Primary())) {
		return fmt.Errorf("%w: unrecognized mode %q, valid modes start with %s",
			ErrInvalidArgument, string(m), quoteEach(allowed))
	}
	return nil
}

func quoteEach(chars string) string {
	parts := make([]string, 0, len(chars))
	for _, c := range chars {
		parts = append(parts, "'"+string(c)+"'")
	}
	return strings.Join(parts, ", ")
}

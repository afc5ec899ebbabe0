package rwkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format names a payload format handled by a codec.
type Format string

const (
	FormatInfer Format = ""
	FormatText  Format = "text"
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatDocx  Format = "docx"
)

// String returns the string representation of the format.
func (f Format) String() string {
	if f == FormatInfer {
		return "infer"
	}
	return string(f)
}

// SupportedFormats returns every format the dispatcher knows about.
func SupportedFormats() []Format {
	return []Format{FormatText, FormatLines, FormatJSON, FormatJSONL, FormatYAML, FormatDocx}
}

// ParseFormat converts a user supplied string into a Format.
// "infer" and the empty string yield FormatInfer.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "infer" {
		return FormatInfer, nil
	}
	for _, f := range SupportedFormats() {
		if Format(s) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported file type %q, valid file types are %v",
		ErrInvalidArgument, s, SupportedFormats())
}

func (f Format) remedy() string {
	switch f {
	case FormatDocx:
		return "register a docx codec with rwkit.Register"
	case FormatYAML:
		return "import github.com/grokify/rwkit/format/yaml (built without the noyaml tag)"
	default:
		return "import github.com/grokify/rwkit/format/all"
	}
}

// formatExtensions lists the document extensions per format.
// docx does not combine with compression suffixes.
var formatExtensions = []struct {
	format   Format
	exts     []string
	compress bool
}{
	{FormatText, []string{".txt"}, true},
	{FormatJSON, []string{".json"}, true},
	{FormatJSONL, []string{".jsonl"}, true},
	{FormatYAML, []string{".yaml", ".yml"}, true},
	{FormatDocx, []string{".docx"}, false},
}

// FileExtensions returns every document extension InferFormat recognizes,
// including compressed variants.
func FileExtensions() []string {
	var out []string
	for _, fe := range formatExtensions {
		for _, ext := range fe.exts {
			out = append(out, ext)
			if fe.compress {
				for _, cext := range CompressionExtensions() {
					out = append(out, ext+cext)
				}
			}
		}
	}
	return out
}

// InferFormat infers the payload format from the filename extension after
// any known compression suffix. Plain text infers FormatText, never
// FormatLines, since a name cannot tell a string from a list of lines.
func InferFormat(path string) (Format, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: must be a file, not a directory: %q", ErrIsDirectory, path)
	}

	name := strings.ToLower(filepath.Base(path))
	for _, fe := range formatExtensions {
		for _, ext := range fe.exts {
			if strings.HasSuffix(name, ext) {
				return fe.format, nil
			}
			if !fe.compress {
				continue
			}
			for _, cext := range CompressionExtensions() {
				if strings.HasSuffix(name, ext+cext) {
					return fe.format, nil
				}
			}
		}
	}
	return "", fmt.Errorf("%w: unrecognized file extension %q, valid file extensions are %v",
		ErrInvalidArgument, name, FileExtensions())
}

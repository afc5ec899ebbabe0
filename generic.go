package rwkit

// Read reads path with the codec for its format and returns the decoded value.
//
// The format comes from WithFormat or is inferred from the extension. An
// inferred text file is read as lines when a chunk size is given, in which
// case the result is a batch reader rather than a slice.
func Read(path string, opts ...Option) (any, error) {
	config := ApplyOptions(opts...)

	format := config.Format
	if format == FormatInfer {
		inferred, err := InferFormat(path)
		if err != nil {
			return nil, err
		}
		format = inferred
		if format == FormatText && config.Chunked() {
			format = FormatLines
		}
	}

	codec, err := Lookup(format)
	if err != nil {
		return nil, err
	}

	config.Log().Debug("dispatching read",
		"path", path,
		"format", format.String())

	return codec.Read(path, opts...)
}

// Write writes v to path with the codec for its format.
//
// The format comes from WithFormat or is inferred from the extension. A
// slice written to an inferred text file is written as lines.
func Write(path string, v any, opts ...Option) error {
	config := ApplyOptions(opts...)

	format := config.Format
	if format == FormatInfer {
		inferred, err := InferFormat(path)
		if err != nil {
			return err
		}
		format = inferred
		if format == FormatText && isList(v) {
			format = FormatLines
		}
	}

	codec, err := Lookup(format)
	if err != nil {
		return err
	}

	config.Log().Debug("dispatching write",
		"path", path,
		"format", format.String())

	return codec.Write(path, v, opts...)
}

func isList(v any) bool {
	switch v.(type) {
	case []string, []any:
		return true
	}
	return false
}

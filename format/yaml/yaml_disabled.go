//go:build noyaml

package yaml

import (
	"fmt"

	"github.com/grokify/rwkit"
)

// Available reports whether YAML support is compiled in.
const Available = false

func missing(path string) error {
	return fmt.Errorf("%w: yaml support (gopkg.in/yaml.v3) was built out with the noyaml tag, rebuild without it to use %q",
		rwkit.ErrMissingDependency, path)
}

// Read returns rwkit.ErrMissingDependency.
func Read(path string, _ ...rwkit.Option) (any, error) {
	return nil, missing(path)
}

// ReadInto returns rwkit.ErrMissingDependency.
func ReadInto(path string, _ any, _ ...rwkit.Option) error {
	return missing(path)
}

// ReadDocument returns rwkit.ErrMissingDependency.
func ReadDocument(path string, _ ...rwkit.Option) (any, error) {
	return nil, missing(path)
}

// Write returns rwkit.ErrMissingDependency after checking the mode.
func Write(path string, _ any, opts ...rwkit.Option) error {
	if _, _, err := writeMode(opts...); err != nil {
		return err
	}
	return missing(path)
}

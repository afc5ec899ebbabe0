// Package yaml reads and writes YAML documents through the rwkit stream
// opener using gopkg.in/yaml.v3, which never constructs arbitrary types.
//
// Importing the package registers a codec for rwkit.FormatYAML. Building
// with the noyaml tag leaves the codec unregistered and makes every function
// return rwkit.ErrMissingDependency.
package yaml

import (
	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/stream"
)

// Item is one key/value pair of an Ordered mapping.
type Item struct {
	Key   string
	Value any
}

// Ordered is a mapping that keeps its keys in insertion order when written.
// Go maps are written with sorted keys.
type Ordered []Item

// Get returns the value stored under key.
func (o Ordered) Get(key string) (any, bool) {
	for _, item := range o {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (o Ordered) Keys() []string {
	keys := make([]string, len(o))
	for i, item := range o {
		keys[i] = item.Key
	}
	return keys
}

func readAll(path string, opts ...rwkit.Option) ([]byte, error) {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeRead)
	if err := mode.RequirePrimary("r"); err != nil {
		return nil, err
	}

	var data []byte
	err := stream.Use(path, func(h *stream.Handle) error {
		var err error
		data, err = h.ReadAll()
		return err
	}, config.StreamOptions(mode)...)
	return data, err
}

func writeMode(opts ...rwkit.Option) (*rwkit.Config, rwkit.Mode, error) {
	config := rwkit.ApplyOptions(opts...)
	mode := config.ModeOr(rwkit.ModeWrite)
	if err := mode.RequirePrimary("wx"); err != nil {
		return nil, "", err
	}
	return config, mode, nil
}

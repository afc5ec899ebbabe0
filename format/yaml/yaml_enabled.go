//go:build !noyaml

package yaml

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/stream"
)

// Available reports whether YAML support is compiled in.
const Available = true

// Indent is the number of spaces per nesting level in written documents.
const Indent = 2

func init() {
	rwkit.Register(rwkit.FormatYAML, codec{})
}

// Read reads the YAML document at path. Mappings decode to map[string]any,
// sequences to []any. An empty file yields nil.
func Read(path string, opts ...rwkit.Option) (any, error) {
	var v any
	if err := ReadInto(path, &v, opts...); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadInto decodes the YAML document at path into v.
func ReadInto(path string, v any, opts ...rwkit.Option) error {
	data, err := readAll(path, opts...)
	if err != nil {
		return err
	}
	if err := yamlv3.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode yaml %q: %w", path, err)
	}
	return nil
}

// ReadNode reads the YAML document at path as a node tree, which keeps
// key order and comments.
func ReadNode(path string, opts ...rwkit.Option) (*yamlv3.Node, error) {
	node := &yamlv3.Node{}
	if err := ReadInto(path, node, opts...); err != nil {
		return nil, err
	}
	return node, nil
}

// ReadDocument reads the YAML document at path in a form Write renders back
// with its key order and comments intact. An empty file yields nil.
func ReadDocument(path string, opts ...rwkit.Option) (any, error) {
	node, err := ReadNode(path, opts...)
	if err != nil {
		return nil, err
	}
	if node.Kind == 0 {
		return nil, nil
	}
	return node, nil
}

// Write writes v to path as a block-style YAML document. Modes w and x are
// accepted. Struct fields and Ordered items keep their order.
func Write(path string, v any, opts ...rwkit.Option) error {
	config, mode, err := writeMode(opts...)
	if err != nil {
		return err
	}

	data, err := Marshal(v)
	if err != nil {
		return err
	}

	config.Log().Debug("writing yaml", "path", path, "bytes", len(data))

	return stream.Use(path, func(h *stream.Handle) error {
		return h.WriteAll(data)
	}, config.StreamOptions(mode)...)
}

// Marshal renders v as a YAML document indented by Indent spaces.
func Marshal(v any) (data []byte, err error) {
	// yaml.v3 panics on values it cannot represent, such as channels.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", rwkit.ErrInvalidType, r)
		}
	}()

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode(floats(v)); err != nil {
		return nil, fmt.Errorf("%w: %w", rwkit.ErrInvalidType, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// floats returns v with float leaves replaced by values that always render
// as YAML floats, so 3.0 does not read back as the integer 3. Containers are
// copied, never modified in place.
func floats(v any) any {
	switch v := v.(type) {
	case float64:
		return yamlFloat{f: v, bits: 64}
	case float32:
		return yamlFloat{f: float64(v), bits: 32}
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = floats(e)
		}
		return out
	case []float64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = yamlFloat{f: e, bits: 64}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = floats(e)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[k] = floats(e)
		}
		return out
	case map[string]float64:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = yamlFloat{f: e, bits: 64}
		}
		return out
	case Ordered:
		out := make(Ordered, len(v))
		for i, item := range v {
			out[i] = Item{Key: item.Key, Value: floats(item.Value)}
		}
		return out
	}
	return v
}

type yamlFloat struct {
	f    float64
	bits int
}

func (y yamlFloat) MarshalYAML() (any, error) {
	var s string
	switch {
	case math.IsInf(y.f, 1):
		s = ".inf"
	case math.IsInf(y.f, -1):
		s = "-.inf"
	case math.IsNaN(y.f):
		s = ".nan"
	default:
		s = strconv.FormatFloat(y.f, 'g', -1, y.bits)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
	}
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!float", Value: s}, nil
}

// MarshalYAML emits o as a mapping in item order.
func (o Ordered) MarshalYAML() (any, error) {
	node := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
	for _, item := range o {
		value := &yamlv3.Node{}
		if err := value.Encode(floats(item.Value)); err != nil {
			return nil, fmt.Errorf("encode %q: %w", item.Key, err)
		}
		node.Content = append(node.Content,
			&yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!str", Value: item.Key},
			value)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping into o, keeping document order. Nested
// mappings decode to map[string]any.
func (o *Ordered) UnmarshalYAML(node *yamlv3.Node) error {
	if node.Kind != yamlv3.MappingNode {
		return fmt.Errorf("%w: expected a mapping, got %s at line %d",
			rwkit.ErrInvalidType, kindName(node.Kind), node.Line)
	}
	items := make(Ordered, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		items = append(items, Item{Key: node.Content[i].Value, Value: value})
	}
	*o = items
	return nil
}

func kindName(kind yamlv3.Kind) string {
	switch kind {
	case yamlv3.DocumentNode:
		return "document"
	case yamlv3.SequenceNode:
		return "sequence"
	case yamlv3.MappingNode:
		return "mapping"
	case yamlv3.ScalarNode:
		return "scalar"
	case yamlv3.AliasNode:
		return "alias"
	}
	return "unknown"
}

type codec struct{}

func (codec) Read(path string, opts ...rwkit.Option) (any, error) {
	if rwkit.ApplyOptions(opts...).Chunked() {
		return nil, fmt.Errorf("%w: chunk size is not supported for yaml", rwkit.ErrInvalidArgument)
	}
	return Read(path, opts...)
}

func (codec) Write(path string, v any, opts ...rwkit.Option) error {
	return Write(path, v, opts...)
}

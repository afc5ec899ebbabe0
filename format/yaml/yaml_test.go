//go:build !noyaml

package yaml

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/grokify/rwkit"
)

var extensions = []string{
	"", ".bz2", ".gz", ".xz", ".zip", ".zst",
	".tar", ".tar.bz2", ".tar.gz", ".tgz", ".tar.xz",
}

func TestRoundTrip(t *testing.T) {
	values := []struct {
		name string
		v    any
	}{
		{"string", "These are words of a sentence"},
		{"dict", map[string]any{"a": 1, "b": "two", "c": nil}},
		{"list", []any{1, 2.5, "x", false}},
		{"nested", map[string]any{"list": []any{map[string]any{"k": []any{1, 2}}}, "dict": map[string]any{"x": "y"}}},
		{"int", 42},
		{"bool", true},
		{"float", 3.25},
		{"float-integral", 3.0},
		{"integral floats", map[string]any{"list": []any{1.0, 1.5}, "neg": -2.0, "big": 1e+21}},
	}

	for _, ext := range extensions {
		t.Run("yaml"+ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.yaml"+ext)
			for _, tt := range values {
				if err := Write(path, tt.v); err != nil {
					t.Fatalf("%s: Write failed: %v", tt.name, err)
				}
				got, err := Read(path)
				if err != nil {
					t.Fatalf("%s: Read failed: %v", tt.name, err)
				}
				if diff := cmp.Diff(tt.v, got); diff != "" {
					t.Errorf("%s: mismatch (-want +got):\n%s", tt.name, diff)
				}
			}
		})
	}
}

func TestMarshalFloats(t *testing.T) {
	data, err := Marshal(Ordered{
		{"whole", 3.0},
		{"single", float32(2)},
		{"frac", 0.5},
		{"list", []float64{1, 2.5}},
		{"inf", math.Inf(1)},
		{"int", 3},
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := "whole: 3.0\nsingle: 2.0\nfrac: 0.5\nlist:\n  - 1.0\n  - 2.5\ninf: .inf\nint: 3\n"
	if string(data) != want {
		t.Errorf("Marshal = %q, want %q", data, want)
	}
}

func TestWriteOrder(t *testing.T) {
	dir := t.TempDir()

	ordered := Ordered{{"zeta", 1}, {"alpha", []any{"x", "y"}}, {"mid", Ordered{{"b", 2}, {"a", 1}}}}
	path := filepath.Join(dir, "ordered.yml")
	if err := Write(path, ordered); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	want := "zeta: 1\nalpha:\n  - x\n  - y\nmid:\n  b: 2\n  a: 1\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("ordered output mismatch (-want +got):\n%s", diff)
	}

	path = filepath.Join(dir, "map.yml")
	if err := Write(path, map[string]any{"zeta": 1, "alpha": 2}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if want := "alpha: 2\nzeta: 1\n"; string(data) != want {
		t.Errorf("map output = %q, want %q", data, want)
	}
}

func TestReadOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ordered.yaml.gz")
	in := Ordered{{"c", 3}, {"a", 1}, {"b", map[string]any{"k": "v"}}}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got Ordered
	if err := ReadInto(path, &got); err != nil {
		t.Fatalf("ReadInto failed: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, got.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, ok := got.Get("b"); !ok || !cmp.Equal(v, map[string]any{"k": "v"}) {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
	if _, ok := got.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}

	path = filepath.Join(t.TempDir(), "list.yaml")
	if err := Write(path, []int{1, 2}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := ReadInto(path, &got); !errors.Is(err, rwkit.ErrInvalidType) {
		t.Errorf("ReadInto(sequence): error = %v, want ErrInvalidType", err)
	}
}

func TestReadNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml.xz")
	if err := Write(path, Ordered{{"second", 2}, {"first", 1}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	node, err := ReadNode(path)
	if err != nil {
		t.Fatalf("ReadNode failed: %v", err)
	}
	if node.Kind != yamlv3.DocumentNode || len(node.Content) != 1 {
		t.Fatalf("unexpected root node: kind %v, %d children", node.Kind, len(node.Content))
	}
	mapping := node.Content[0]
	if mapping.Kind != yamlv3.MappingNode {
		t.Fatalf("document content kind = %v, want mapping", mapping.Kind)
	}
	if mapping.Content[0].Value != "second" || mapping.Content[2].Value != "first" {
		t.Errorf("keys out of order: %q, %q", mapping.Content[0].Value, mapping.Content[2].Value)
	}
}

func TestStructRoundTrip(t *testing.T) {
	type settings struct {
		Name    string   `yaml:"name"`
		Retries int      `yaml:"retries"`
		Hosts   []string `yaml:"hosts"`
	}
	path := filepath.Join(t.TempDir(), "settings.yaml.zst")
	want := settings{Name: "rwkit", Retries: 3, Hosts: []string{"a", "b"}}

	if err := Write(path, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	var got settings
	if err := ReadInto(path, &got); err != nil {
		t.Fatalf("ReadInto failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != nil {
		t.Errorf("Read(empty) = %v, want nil", got)
	}
}

func TestModesAndTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := Write(path, 1, rwkit.WithMode(rwkit.ModeAppend)); !errors.Is(err, rwkit.ErrInvalidArgument) {
		t.Errorf("append Write: error = %v, want ErrInvalidArgument", err)
	}
	if err := Write(path, make(chan int)); !errors.Is(err, rwkit.ErrInvalidType) {
		t.Errorf("Write(chan): error = %v, want ErrInvalidType", err)
	}
	if err := Write(path, 1); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Read(path, rwkit.WithMode(rwkit.ModeExclusive)); !errors.Is(err, rwkit.ErrInvalidArgument) {
		t.Errorf("Read with mode x: error = %v, want ErrInvalidArgument", err)
	}
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("a: [1, 2\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read should fail on malformed yaml")
	}
}

func TestCodec(t *testing.T) {
	if !Available {
		t.Fatal("Available should be true without the noyaml tag")
	}
	codec, err := rwkit.Lookup(rwkit.FormatYAML)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := codec.Write(path, []any{"a"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := codec.Read(path, rwkit.WithChunkSize(1)); !errors.Is(err, rwkit.ErrInvalidArgument) {
		t.Errorf("chunked Read: error = %v, want ErrInvalidArgument", err)
	}
}

func TestReadDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	content := "zeta: 1 # last\nalpha: 0.5\nmid:\n  b: 2\n  a: 1\n"
	if err := os.WriteFile(src, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	doc, err := ReadDocument(src)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	dst := filepath.Join(dir, "out.yaml")
	if err := Write(dst, doc); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != content {
		t.Errorf("file = %q, want %q", data, content)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if doc, err := ReadDocument(empty); err != nil || doc != nil {
		t.Errorf("ReadDocument(empty) = %v, %v; want nil, nil", doc, err)
	}
}

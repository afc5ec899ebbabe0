package rwkit_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/grokify/rwkit"
	_ "github.com/grokify/rwkit/format/all"
	"github.com/grokify/rwkit/stream"
)

func Example() {
	dir, err := os.MkdirTemp("", "rwkit")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.json.gz")
	if err := rwkit.Write(path, map[string]any{"a": 1, "b": []int{1, 2, 3}}); err != nil {
		panic(err)
	}

	v, err := rwkit.Read(path)
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: map[a:1 b:[1 2 3]]
}

func ExampleRead_chunked() {
	dir, err := os.MkdirTemp("", "rwkit")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "words.txt.xz")
	if err := rwkit.Write(path, []string{"one", "two", "three", "four", "five"}); err != nil {
		panic(err)
	}

	v, err := rwkit.Read(path, rwkit.WithChunkSize(2))
	if err != nil {
		panic(err)
	}
	batches := v.(rwkit.BatchReader[string])
	defer batches.Close()

	for batch, err := range batches.All() {
		if err != nil {
			panic(err)
		}
		fmt.Println(batch)
	}
	// Output:
	// [one two]
	// [three four]
	// [five]
}

func ExampleWrite_tarSubFormat() {
	dir, err := os.MkdirTemp("", "rwkit")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	// An explicit tar compression takes its filter from the mode.
	path := filepath.Join(dir, "archive")
	err = rwkit.Write(path, "payload",
		rwkit.WithFormat(rwkit.FormatText),
		rwkit.WithCompression(rwkit.CompressionTar),
		rwkit.WithMode("w:bz2"))
	if err != nil {
		panic(err)
	}

	v, err := rwkit.Read(path,
		rwkit.WithFormat(rwkit.FormatText),
		rwkit.WithCompression(rwkit.CompressionTar))
	if err != nil {
		panic(err)
	}
	fmt.Println(v)
	// Output: payload
}

// TestIntegrationFormats writes and reads each format through the dispatcher
// under every compression suffix.
func TestIntegrationFormats(t *testing.T) {
	suffixes := []string{"", ".bz2", ".gz", ".xz", ".zip", ".zst", ".tar", ".tar.bz2", ".tar.gz", ".tgz", ".tar.xz"}
	docs := []struct {
		name string
		v    any
		want string
	}{
		{"doc.txt", "hello", "hello"},
		{"doc.json", map[string]any{"k": []any{1, "v"}}, "map[k:[1 v]]"},
		{"doc.jsonl", []any{1, "two"}, "[1 two]"},
		{"doc.yaml", map[string]any{"k": "v"}, "map[k:v]"},
	}

	for _, suffix := range suffixes {
		for _, doc := range docs {
			t.Run(doc.name+suffix, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), doc.name+suffix)
				if err := rwkit.Write(path, doc.v); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
				got, err := rwkit.Read(path)
				if err != nil {
					t.Fatalf("Read failed: %v", err)
				}
				if s := fmt.Sprint(got); s != doc.want {
					t.Errorf("Read = %s, want %s", s, doc.want)
				}
			})
		}
	}
}

// TestIntegrationStreamAndCodec mixes raw stream writes with codec reads.
func TestIntegrationStreamAndCodec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt.gz")

	for _, line := range []string{"first\n", "second\n"} {
		err := stream.Use(path, func(h *stream.Handle) error {
			_, err := io.WriteString(h, line)
			return err
		}, rwkit.WithMode(rwkit.ModeAppend), rwkit.WithCompression(rwkit.CompressionInfer))
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := rwkit.Read(path, rwkit.WithLines())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s := fmt.Sprint(got); s != "[first second]" {
		t.Errorf("Read = %s, want [first second]", s)
	}
}

// TestIntegrationRegisteredFormats verifies the built-in codecs register.
func TestIntegrationRegisteredFormats(t *testing.T) {
	for _, f := range []rwkit.Format{rwkit.FormatText, rwkit.FormatLines, rwkit.FormatJSON, rwkit.FormatJSONL, rwkit.FormatYAML} {
		if !rwkit.IsRegistered(f) {
			t.Errorf("%s should be registered", f)
		}
	}
	if _, err := rwkit.Read("report.docx"); !errors.Is(err, rwkit.ErrMissingDependency) {
		t.Errorf("docx: error = %v, want ErrMissingDependency", err)
	}
}

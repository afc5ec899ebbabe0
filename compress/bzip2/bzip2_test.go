package bzip2

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

type testWriteCloser struct {
	*bytes.Buffer
	closed bool
}

func (t *testWriteCloser) Close() error {
	t.closed = true
	return nil
}

type testReadCloser struct {
	*bytes.Reader
	closed bool
}

func (t *testReadCloser) Close() error {
	t.closed = true
	return nil
}

func compress(t *testing.T, level int, data string) []byte {
	t.Helper()
	buf := &testWriteCloser{Buffer: new(bytes.Buffer)}
	w, err := NewWriterLevel(buf, level)
	if err != nil {
		t.Fatalf("NewWriterLevel(%d) failed: %v", level, err)
	}
	if _, err := io.WriteString(w, data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !buf.closed {
		t.Error("Underlying writer should be closed")
	}
	return buf.Bytes()
}

func decompress(t *testing.T, data []byte) string {
	t.Helper()
	src := &testReadCloser{Reader: bytes.NewReader(data)}
	r, err := NewReader(src)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !src.closed {
		t.Error("Underlying reader should be closed")
	}
	return string(out)
}

func TestRoundTripLevels(t *testing.T) {
	data := strings.Repeat("These are words of a sentence\n", 50)
	for level := BestSpeed; level <= BestCompression; level++ {
		if got := decompress(t, compress(t, level, data)); got != data {
			t.Errorf("level %d: round trip mismatch", level)
		}
	}
}

func TestWriterInvalidLevel(t *testing.T) {
	for _, level := range []int{0, 10} {
		if _, err := NewWriterLevel(&testWriteCloser{Buffer: new(bytes.Buffer)}, level); err == nil {
			t.Errorf("NewWriterLevel(%d) should fail", level)
		}
	}
}

func TestConcatenatedStreams(t *testing.T) {
	data := append(compress(t, 1, "x\ny\n"), compress(t, 9, "z\n")...)
	if got := decompress(t, data); got != "x\ny\nz\n" {
		t.Errorf("Decompressed = %q, want %q", got, "x\ny\nz\n")
	}
}

func TestReaderInvalidData(t *testing.T) {
	r, err := NewReader(&testReadCloser{Reader: bytes.NewReader([]byte("not bzip2"))})
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer func() { _ = r.Close() }()

	if _, err := io.ReadAll(r); err == nil {
		t.Error("Expected error when reading non-bzip2 data")
	}
}

func TestClosed(t *testing.T) {
	w, err := NewWriter(&testWriteCloser{Buffer: new(bytes.Buffer)})
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	_ = w.Close()
	if _, err := w.Write([]byte("x")); err != io.ErrClosedPipe {
		t.Errorf("Write after Close: error = %v, want %v", err, io.ErrClosedPipe)
	}
}

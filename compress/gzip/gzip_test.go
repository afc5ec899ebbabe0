package gzip

import (
	"bytes"
	"io"
	"testing"
)

// testWriteCloser wraps a bytes.Buffer with a Close method.
type testWriteCloser struct {
	*bytes.Buffer
	closed bool
}

func newTestWriteCloser() *testWriteCloser {
	return &testWriteCloser{Buffer: new(bytes.Buffer)}
}

func (t *testWriteCloser) Close() error {
	t.closed = true
	return nil
}

// testReadCloser wraps a bytes.Reader with a Close method.
type testReadCloser struct {
	*bytes.Reader
	closed bool
}

func newTestReadCloser(data []byte) *testReadCloser {
	return &testReadCloser{Reader: bytes.NewReader(data)}
}

func (t *testReadCloser) Close() error {
	t.closed = true
	return nil
}

func compress(t *testing.T, level int, data []byte) []byte {
	t.Helper()
	buf := newTestWriteCloser()
	w, err := NewWriterLevel(buf, level)
	if err != nil {
		t.Fatalf("NewWriterLevel(%d) failed: %v", level, err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return buf.Bytes()
}

func decompress(t *testing.T, data []byte) []byte {
	t.Helper()
	r, err := NewReader(newTestReadCloser(data))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close reader failed: %v", err)
	}
	return out
}

func TestWriterBasic(t *testing.T) {
	buf := newTestWriteCloser()
	w, err := NewWriter(buf)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	data := []byte("hello world")
	n, err := w.Write(data)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(data) {
		t.Errorf("Write returned %d, want %d", n, len(data))
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if buf.Len() == 0 {
		t.Error("Buffer should have compressed data")
	}
	if !buf.closed {
		t.Error("Underlying writer should be closed")
	}
}

func TestWriterLevels(t *testing.T) {
	data := []byte("hello world, this is a test of gzip compression at various levels")

	for level := BestSpeed; level <= BestCompression; level++ {
		got := decompress(t, compress(t, level, data))
		if !bytes.Equal(got, data) {
			t.Errorf("level %d: decompressed = %q, want %q", level, got, data)
		}
	}
}

func TestWriterInvalidLevel(t *testing.T) {
	if _, err := NewWriterLevel(newTestWriteCloser(), 42); err == nil {
		t.Error("NewWriterLevel(42) should fail")
	}
}

func TestWriterClosed(t *testing.T) {
	w, err := NewWriter(newTestWriteCloser())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := w.Write([]byte("test")); err != io.ErrClosedPipe {
		t.Errorf("Write after Close: error = %v, want %v", err, io.ErrClosedPipe)
	}
	if err := w.Flush(); err != io.ErrClosedPipe {
		t.Errorf("Flush after Close: error = %v, want %v", err, io.ErrClosedPipe)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Double Close: error = %v, want nil", err)
	}
}

func TestReaderClosed(t *testing.T) {
	readBuf := newTestReadCloser(compress(t, DefaultCompression, []byte("test")))
	r, err := NewReader(readBuf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !readBuf.closed {
		t.Error("Underlying reader should be closed")
	}

	if _, err := r.Read(make([]byte, 10)); err != io.ErrClosedPipe {
		t.Errorf("Read after Close: error = %v, want %v", err, io.ErrClosedPipe)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Double Close: error = %v, want nil", err)
	}
}

func TestRoundTrip(t *testing.T) {
	testData := [][]byte{
		[]byte(""),
		[]byte("short"),
		bytes.Repeat([]byte("abcdefghij"), 1000),
	}

	for i, original := range testData {
		got := decompress(t, compress(t, DefaultCompression, original))
		if !bytes.Equal(got, original) {
			t.Errorf("Test %d: decompressed data doesn't match original", i)
		}
	}
}

func TestReaderConcatenatedMembers(t *testing.T) {
	first := compress(t, BestSpeed, []byte("x\ny\n"))
	second := compress(t, BestCompression, []byte("z\n"))

	got := decompress(t, append(first, second...))
	if string(got) != "x\ny\nz\n" {
		t.Errorf("Decompressed = %q, want %q", got, "x\ny\nz\n")
	}
}

func TestReaderInvalidData(t *testing.T) {
	if _, err := NewReader(newTestReadCloser([]byte("this is not gzip data"))); err == nil {
		t.Error("Expected error when reading non-gzip data")
	}
}

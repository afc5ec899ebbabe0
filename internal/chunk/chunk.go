// Package chunk groups records from a sequential source into fixed-size batches.
package chunk

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sync"
)

// ErrSize is returned for batch sizes below 1.
var ErrSize = errors.New("chunk size must be at least 1")

// NextFunc returns the next record, or io.EOF when the source is exhausted.
type NextFunc[T any] func() (T, error)

// Reader yields batches of up to Size records. It is single-pass: once the
// source is exhausted every call to Next returns io.EOF.
//
// The closer is released when the source is exhausted, when a read fails,
// or on Close, whichever comes first.
type Reader[T any] struct {
	next   NextFunc[T]
	size   int
	closer io.Closer

	done     bool
	closeErr error
	once     sync.Once
}

// NewReader creates a batch reader over next. closer may be nil.
func NewReader[T any](size int, next NextFunc[T], closer io.Closer) (*Reader[T], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrSize, size)
	}
	return &Reader[T]{next: next, size: size, closer: closer}, nil
}

// Size returns the batch size.
func (r *Reader[T]) Size() int {
	return r.size
}

// Next returns the next batch. The final batch may be shorter than Size.
// After the last batch Next returns nil, io.EOF.
func (r *Reader[T]) Next() ([]T, error) {
	if r.done {
		return nil, io.EOF
	}

	batch := make([]T, 0, r.size)
	for len(batch) < r.size {
		rec, err := r.next()
		if errors.Is(err, io.EOF) {
			r.done = true
			if cerr := r.Close(); cerr != nil {
				return nil, cerr
			}
			break
		}
		if err != nil {
			r.done = true
			_ = r.Close()
			return nil, err
		}
		batch = append(batch, rec)
	}

	if len(batch) == 0 {
		return nil, io.EOF
	}
	return batch, nil
}

// All returns an iterator over the remaining batches. Iteration stops after
// the first error, which is yielded with a nil batch.
func (r *Reader[T]) All() iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for {
			batch, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(batch, err) || err != nil {
				return
			}
		}
	}
}

// Collect drains the reader into a slice of batches.
func (r *Reader[T]) Collect() ([][]T, error) {
	var out [][]T
	for batch, err := range r.All() {
		if err != nil {
			return out, err
		}
		out = append(out, batch)
	}
	return out, nil
}

// Close releases the underlying source. It is safe to call more than once.
func (r *Reader[T]) Close() error {
	r.once.Do(func() {
		r.done = true
		if r.closer != nil {
			r.closeErr = r.closer.Close()
		}
	})
	return r.closeErr
}

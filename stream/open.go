// Package stream opens one logical byte stream per file, hiding whether the
// file is plain, compressed with gzip, bzip2, xz or zstd, or wrapped in a
// single-member tar or zip archive.
//
// Basic usage:
//
//	h, err := stream.Open("data.txt.gz", rwkit.WithCompression(rwkit.CompressionInfer))
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//	content, err := h.ReadAll()
//
// Writing to a tar archive yields a pending entry instead of a live writer:
//
//	err := stream.Use("out.tar.xz", func(h *stream.Handle) error {
//	    return h.WriteAll(payload)
//	}, rwkit.WithMode(rwkit.ModeWrite), rwkit.WithCompression(rwkit.CompressionInfer))
package stream

import (
	"errors"
	"fmt"

	"github.com/grokify/rwkit"
)

type opener func(req *request) (*Handle, error)

var openers = map[rwkit.Compression]opener{
	rwkit.CompressionNone:  openNone,
	rwkit.CompressionGzip:  openGzip,
	rwkit.CompressionBzip2: openBzip2,
	rwkit.CompressionXz:    openXz,
	rwkit.CompressionZstd:  openZstd,
	rwkit.CompressionZip:   openZip,
	rwkit.CompressionTar:   openTar,
}

// Open resolves the options into a concrete stream for path.
//
// The mode defaults to ModeRead and the compression to CompressionNone.
// Exactly one file is opened; the caller must Close the handle.
func Open(path string, opts ...rwkit.Option) (*Handle, error) {
	config := rwkit.ApplyOptions(opts...)

	req, err := resolve(path, config)
	if err != nil {
		return nil, err
	}

	open, ok := openers[req.compression]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported compression %q", rwkit.ErrInvalidArgument, string(req.compression))
	}

	h, err := open(req)
	if err != nil {
		return nil, err
	}

	req.logger.Debug("opened stream",
		"path", req.path,
		"compression", req.compression.String(),
		"mode", string(req.mode),
		"level", req.level,
		"kind", h.kind.String(),
		"binary", h.Binary())

	return h, nil
}

// Use opens path, passes the handle to fn and closes it afterwards, whether
// or not fn fails or panics. Errors from fn and Close are joined.
func Use(path string, fn func(h *Handle) error, opts ...rwkit.Option) (err error) {
	h, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, h.Close()) }()
	return fn(h)
}

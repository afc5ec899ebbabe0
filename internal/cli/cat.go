package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/stream"
)

// Cat writes the decompressed content of a file to stdout.
type Cat struct {
	Path        string `kong:"arg,required,name=path,help='File to read. (eg. data.json.gz)'"`
	Compression string `kong:"name=compression,short=c,default=infer,help='Compression: none, infer, bz2, gzip, tar, xz, zip or zstd.'"`
	Mode        string `kong:"name=mode,default=r,help='Read mode, with a tar sub-format if needed. (eg. r:gz)'"`
}

// Run copies the stream to env.Stdout.
func (c *Cat) Run(env *Env) error {
	compression, err := rwkit.ParseCompression(c.Compression)
	if err != nil {
		return errors.Wrap(err, "invalid compression flag")
	}

	var n int64
	err = stream.Use(c.Path, func(h *stream.Handle) error {
		var err error
		n, err = io.Copy(env.Stdout, h)
		return err
	}, env.options(
		rwkit.WithMode(rwkit.Mode(c.Mode)),
		rwkit.WithCompression(compression),
	)...)
	if err != nil {
		return errors.Wrapf(err, "cannot read %q", c.Path)
	}

	log.Debug().Str("path", c.Path).Int64("bytes", n).Msg("Stream copied")
	return nil
}

package cli

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/grokify/rwkit"
	"github.com/grokify/rwkit/format/yaml"
)

// Convert reads a file with one codec and compression and writes it with another.
type Convert struct {
	Src string `kong:"arg,required,name=src,help='Source file.'"`
	Dst string `kong:"arg,required,name=dst,help='Destination file.'"`

	Format        string `kong:"name=format,default=infer,help='Source format: text, lines, json, jsonl, yaml or infer.'"`
	ToFormat      string `kong:"name=to-format,default=infer,help='Destination format.'"`
	Compression   string `kong:"name=compression,short=c,default=infer,help='Source compression.'"`
	ToCompression string `kong:"name=to-compression,default=infer,help='Destination compression.'"`
	Level         int    `kong:"name=level,default=0,help='Compression level, 0 for the default.'"`
	Lines         bool   `kong:"name=lines,default=false,help='Treat text and JSON as line oriented.'"`
	Lenient       bool   `kong:"name=lenient,default=false,help='Accept JSON with comments and trailing commas.'"`
	Exclusive     bool   `kong:"name=exclusive,short=x,default=false,help='Fail if the destination exists.'"`
}

// Run converts Src into Dst.
func (c *Convert) Run(env *Env) error {
	srcFormat, err := rwkit.ParseFormat(c.Format)
	if err != nil {
		return errors.Wrap(err, "invalid format flag")
	}
	dstFormat, err := rwkit.ParseFormat(c.ToFormat)
	if err != nil {
		return errors.Wrap(err, "invalid to-format flag")
	}
	srcCompression, err := rwkit.ParseCompression(c.Compression)
	if err != nil {
		return errors.Wrap(err, "invalid compression flag")
	}
	dstCompression, err := rwkit.ParseCompression(c.ToCompression)
	if err != nil {
		return errors.Wrap(err, "invalid to-compression flag")
	}

	readOpts := env.options(
		rwkit.WithFormat(srcFormat),
		rwkit.WithCompression(srcCompression),
	)
	writeOpts := env.options(
		rwkit.WithFormat(dstFormat),
		rwkit.WithCompression(dstCompression),
		rwkit.WithLevel(c.Level),
	)
	if c.Lines {
		readOpts = append(readOpts, rwkit.WithLines())
		writeOpts = append(writeOpts, rwkit.WithLines())
	}
	if c.Lenient {
		readOpts = append(readOpts, rwkit.WithLenientJSON())
	}
	if c.Exclusive {
		writeOpts = append(writeOpts, rwkit.WithMode(rwkit.ModeExclusive))
	}

	read := rwkit.Read
	if resolveFormat(srcFormat, c.Src) == rwkit.FormatYAML && resolveFormat(dstFormat, c.Dst) == rwkit.FormatYAML {
		// Keeps key order and comments.
		read = yaml.ReadDocument
	}
	v, err := read(c.Src, readOpts...)
	if err != nil {
		return errors.Wrapf(err, "cannot read %q", c.Src)
	}
	if err := rwkit.Write(c.Dst, v, writeOpts...); err != nil {
		return errors.Wrapf(err, "cannot write %q", c.Dst)
	}

	log.Info().Str("src", c.Src).Str("dst", c.Dst).Msg("Converted")
	return nil
}

func resolveFormat(format rwkit.Format, path string) rwkit.Format {
	if format != rwkit.FormatInfer {
		return format
	}
	inferred, err := rwkit.InferFormat(path)
	if err != nil {
		return format
	}
	return inferred
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/grokify/rwkit"
)

// Detect reports what rwkit infers from a filename next to what the content
// looks like.
type Detect struct {
	Path string `kong:"arg,required,name=path,help='File to inspect.'"`
}

// Run prints one "key: value" line per finding.
func (d *Detect) Run(env *Env) error {
	compression, sub := rwkit.InferCompression(d.Path)
	if sub != "" {
		compression = rwkit.Compression(fmt.Sprintf("%s:%s", compression, sub))
	}

	format := "unknown"
	if f, err := rwkit.InferFormat(d.Path); err == nil {
		format = f.String()
	} else if rwkit.IsDirectory(err) {
		return errors.Wrapf(err, "cannot inspect %q", d.Path)
	}

	f, err := os.Open(d.Path)
	if err != nil {
		return errors.Wrapf(err, "cannot open %q", d.Path)
	}
	defer f.Close()

	content := "unknown"
	af, _, err := archives.Identify(env.ctx(), filepath.Base(d.Path), f)
	switch {
	case err == nil:
		content = fmt.Sprintf("%s (%s)", af.Extension(), af.MediaType())
	case errors.Is(err, archives.NoMatch):
		log.Debug().Str("path", d.Path).Msg("Content not recognized")
	default:
		return errors.Wrapf(err, "cannot identify %q", d.Path)
	}

	_, err = fmt.Fprintf(env.Stdout, "path: %s\ncompression: %s\nformat: %s\ncontent: %s\n",
		d.Path, compression, format, content)
	return err
}

// Package cli implements the rwkit commands.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/grokify/rwkit"

	_ "github.com/grokify/rwkit/format/all"
)

// Env is bound into every command run.
type Env struct {
	Context context.Context
	Stdout  io.Writer

	// Logger receives library debug output. Nil disables it.
	Logger *slog.Logger
}

func (e *Env) ctx() context.Context {
	if e.Context == nil {
		return context.Background()
	}
	return e.Context
}

func (e *Env) options(opts ...rwkit.Option) []rwkit.Option {
	return append(opts, rwkit.WithLogger(e.Logger))
}

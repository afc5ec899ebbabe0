package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/grokify/rwkit/internal/cli"
	"github.com/grokify/rwkit/internal/config"
	"github.com/grokify/rwkit/internal/logging"
)

var (
	c       config.Cli
	version = "dev"
	meta    = config.Meta{
		ID:   "rwkit",
		Name: "rwkit",
		Desc: "Read and write plain, compressed and archived data files",
		URL:  "https://github.com/grokify/rwkit",
	}
)

func main() {
	meta.Version = version

	kctx := kong.Parse(&c,
		kong.Name(meta.ID),
		kong.Description(fmt.Sprintf("%s. More info: %s", meta.Desc, meta.URL)),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	// Logging
	logging.Configure(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := &cli.Env{
		Context: ctx,
		Stdout:  os.Stdout,
		Logger:  logging.Slog(log.Logger),
	}
	if err := kctx.Run(env); err != nil {
		stop()
		log.Fatal().Stack().Err(err).Send()
	}
}

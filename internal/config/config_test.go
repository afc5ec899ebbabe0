package config

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Cli, *kong.Context) {
	t.Helper()
	var cli Cli
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestDefaults(t *testing.T) {
	cli, ctx := parse(t, "detect", "data.json.gz")

	assert.Equal(t, "detect <path>", ctx.Command())
	assert.Equal(t, "warn", cli.LogLevel)
	assert.False(t, cli.LogJSON)
	assert.Equal(t, "data.json.gz", cli.Detect.Path)
}

func TestEnv(t *testing.T) {
	t.Setenv("RWKIT_LOG_LEVEL", "debug")
	t.Setenv("RWKIT_LOG_JSON", "true")

	cli, _ := parse(t, "cat", "data.txt.xz")

	assert.Equal(t, "debug", cli.LogLevel)
	assert.True(t, cli.LogJSON)
	assert.Equal(t, "infer", cli.Cat.Compression)
	assert.Equal(t, "r", cli.Cat.Mode)
}

func TestConvertFlags(t *testing.T) {
	cli, ctx := parse(t, "convert", "in.json", "out.yaml.gz",
		"--to-compression", "gzip", "--level", "9", "--lenient", "-x")

	assert.Equal(t, "convert <src> <dst>", ctx.Command())
	assert.Equal(t, "in.json", cli.Convert.Src)
	assert.Equal(t, "out.yaml.gz", cli.Convert.Dst)
	assert.Equal(t, "gzip", cli.Convert.ToCompression)
	assert.Equal(t, 9, cli.Convert.Level)
	assert.True(t, cli.Convert.Lenient)
	assert.True(t, cli.Convert.Exclusive)
	assert.Equal(t, "infer", cli.Convert.Format)
}

// Package config holds the command line definition of the rwkit tool.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/grokify/rwkit/internal/cli"
)

// Meta describes the application.
type Meta struct {
	ID      string
	Name    string
	Desc    string
	URL     string
	Version string
}

// Cli holds command line args, flags and commands.
type Cli struct {
	Version kong.VersionFlag

	LogLevel   string `kong:"name=log-level,env=RWKIT_LOG_LEVEL,default=warn,help='Set log level. Debug also enables library tracing.'"`
	LogJSON    bool   `kong:"name=log-json,env=RWKIT_LOG_JSON,default=false,help='Enable JSON logging output.'"`
	LogCaller  bool   `kong:"name=log-caller,env=RWKIT_LOG_CALLER,default=false,help='Add file:line of the caller to log output.'"`
	LogNoColor bool   `kong:"name=log-nocolor,env=RWKIT_LOG_NOCOLOR,default=false,help='Disable colorized output.'"`

	Cat     cli.Cat     `kong:"cmd,help='Decompress a file to stdout.'"`
	Convert cli.Convert `kong:"cmd,help='Read a file and write it in another format or compression.'"`
	Detect  cli.Detect  `kong:"cmd,help='Show the inferred and detected formats of a file.'"`
}

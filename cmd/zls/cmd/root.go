// Package cmd implements the command-line surface: "zls serve" starts the
// stdio language server, "zls version" reports build identity. The
// Dockerfile/Containerfile linting commands of the teacher's own CLI tree
// (check, lint) are out of scope for a language server core and are not
// carried over.
package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lang-tools/zls-core/internal/version"
)

// ExitConfigError is returned when a command cannot even start due to a
// configuration or argument problem.
const ExitConfigError = 2

// NewApp creates the CLI application.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "zls",
		Usage:   "Language server for a statically-typed systems language toolchain",
		Version: version.RawVersion(),
		Description: `zls implements the Language Server Protocol request-dispatch core:
lifecycle negotiation, capability negotiation, static handler dispatch,
and the configuration subsystem, collaborating with an external syntax
checker for diagnostics.

Examples:
  zls serve
  zls version --json`,
		Commands: []*cli.Command{
			serveCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application.
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}

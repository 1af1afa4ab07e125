package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/lang-tools/zls-core/internal/config"
	"github.com/lang-tools/zls-core/internal/lspserver"
	"github.com/lang-tools/zls-core/internal/syntaxcheck"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the Language Server Protocol server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdio",
				Usage: "Use stdin/stdout for communication (required)",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "checker-exe",
				Usage: "Path to the syntax-checker executable (overrides zig_exe_path)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn, error",
				Value: "info",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "Override a config option, repeatable (e.g. --set enable_autofix=false)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("stdio") {
				fmt.Fprintln(os.Stderr, "Error: only --stdio transport is supported")
				return cli.Exit("", ExitConfigError)
			}

			log := newLogger(cmd.String("log-level"))

			wd, err := os.Getwd()
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			cfg, err := config.LoadAmbientWithOverrides(wd, parseSetFlags(cmd.StringSlice("set")))
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}

			exePath := cmd.String("checker-exe")
			if exePath == "" {
				exePath = cfg.ZigExePath
			}
			checker := syntaxcheck.NewProcessChecker(exePath, []string{"ast-check"}, log)

			sub := config.NewSubsystem(cfg, log)
			server := lspserver.New(checker, sub, log)
			return server.RunStdio(ctx)
		},
	}
}

// parseSetFlags turns repeated "key=value" --set flags into the override
// map LoadAmbientWithOverrides layers over the file/env config. Entries
// without an "=" are skipped.
func parseSetFlags(raw []string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for _, kv := range raw {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[key] = val
	}
	return out
}

// newLogger builds a stderr-only logger (stdout is reserved for the LSP
// wire), colorized only when stderr is an interactive terminal.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:          !isatty.IsTerminal(os.Stderr.Fd()),
		FullTimestamp:          true,
		DisableLevelTruncation: true,
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
